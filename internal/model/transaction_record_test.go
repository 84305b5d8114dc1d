package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveTimestamp(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	updated := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	block := int64(1748800000)
	processed := int64(1748900000)

	record := TransactionRecord{
		CreatedAt: created,
		UpdatedAt: updated,
		Donation:  Donation{BlockTimestamp: block, ProcessedAt: processed},
	}
	assert.True(t, record.EffectiveTimestamp().Equal(created))

	record.CreatedAt = time.Time{}
	assert.True(t, record.EffectiveTimestamp().Equal(updated))

	record.UpdatedAt = time.Time{}
	assert.True(t, record.EffectiveTimestamp().Equal(time.Unix(block, 0)))

	record.Donation.BlockTimestamp = 0
	assert.True(t, record.EffectiveTimestamp().Equal(time.Unix(processed, 0)))

	record.Donation.ProcessedAt = 0
	assert.True(t, record.EffectiveTimestamp().IsZero())
}
