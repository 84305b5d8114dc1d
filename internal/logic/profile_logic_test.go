package logic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

func TestUpsertProfileCreates(t *testing.T) {
	db := newTestDB(t)
	l := NewProfileLogic(db)

	profile, isNew, err := l.UpsertProfile(&UpsertProfileInput{
		Fid:      "1001",
		Username: strPtr("alice"),
		Wallet:   "0xAbC0000000000000000000000000000000000001",
	})
	require.NoError(t, err)

	assert.True(t, isNew)
	assert.Equal(t, "1001", profile.Fid)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, []string{"0xabc0000000000000000000000000000000000001"}, []string(profile.Wallets))
	assert.False(t, profile.FirstVisitAt.IsZero())
	assert.True(t, profile.FirstVisitAt.Equal(profile.LastVisitAt))
	assert.False(t, profile.ShownAddMiniappPrompt)
}

func TestUpsertProfileSecondVisit(t *testing.T) {
	db := newTestDB(t)
	l := NewProfileLogic(db)

	first, isNew, err := l.UpsertProfile(&UpsertProfileInput{
		Fid:    "1002",
		Wallet: "0xAbC0000000000000000000000000000000000001",
	})
	require.NoError(t, err)
	require.True(t, isNew)

	time.Sleep(10 * time.Millisecond)

	second, isNew, err := l.UpsertProfile(&UpsertProfileInput{
		Fid:      "1002",
		Username: strPtr("bob"),
		Wallet:   "0xAbC0000000000000000000000000000000000002",
	})
	require.NoError(t, err)

	assert.False(t, isNew)
	assert.Equal(t, "bob", second.Username)
	assert.True(t, second.FirstVisitAt.Equal(first.FirstVisitAt))
	assert.True(t, second.LastVisitAt.After(first.LastVisitAt))
	assert.Equal(t, []string{
		"0xabc0000000000000000000000000000000000001",
		"0xabc0000000000000000000000000000000000002",
	}, []string(second.Wallets))
}

func TestUpsertProfileWalletDedup(t *testing.T) {
	db := newTestDB(t)
	l := NewProfileLogic(db)

	_, _, err := l.UpsertProfile(&UpsertProfileInput{
		Fid:    "1003",
		Wallet: "0xAbC0000000000000000000000000000000000001",
	})
	require.NoError(t, err)

	// 同一地址换大小写再提交，不产生重复
	profile, _, err := l.UpsertProfile(&UpsertProfileInput{
		Fid:    "1003",
		Wallet: "0xABC0000000000000000000000000000000000001",
	})
	require.NoError(t, err)
	assert.Len(t, []string(profile.Wallets), 1)
}

func TestUpsertProfileWalletUnion(t *testing.T) {
	db := newTestDB(t)
	l := NewProfileLogic(db)

	// 交错提交不同钱包，集合语义要求先提交的地址不被后写覆盖
	wallets := []string{
		"0xAbC0000000000000000000000000000000000001",
		"0xAbC0000000000000000000000000000000000002",
		"0xAbC0000000000000000000000000000000000003",
	}
	for _, wallet := range wallets {
		_, _, err := l.UpsertProfile(&UpsertProfileInput{Fid: "1005", Wallet: wallet})
		require.NoError(t, err)
	}

	profile, err := l.GetProfile("1005")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"0xabc0000000000000000000000000000000000001",
		"0xabc0000000000000000000000000000000000002",
		"0xabc0000000000000000000000000000000000003",
	}, []string(profile.Wallets))
}

func TestUpsertProfileMissingFid(t *testing.T) {
	db := newTestDB(t)
	l := NewProfileLogic(db)

	_, _, err := l.UpsertProfile(&UpsertProfileInput{Wallet: "0xabc"})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestGetProfileNotFound(t *testing.T) {
	db := newTestDB(t)
	l := NewProfileLogic(db)

	_, err := l.GetProfile("9999")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestPatchProfile(t *testing.T) {
	db := newTestDB(t)
	l := NewProfileLogic(db)

	_, _, err := l.UpsertProfile(&UpsertProfileInput{Fid: "1004"})
	require.NoError(t, err)

	require.NoError(t, l.PatchProfile("1004", boolPtr(true)))

	profile, err := l.GetProfile("1004")
	require.NoError(t, err)
	assert.True(t, profile.ShownAddMiniappPrompt)
}

func TestPatchProfileNotFound(t *testing.T) {
	db := newTestDB(t)
	l := NewProfileLogic(db)

	err := l.PatchProfile("9999", boolPtr(true))
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestListProfiles(t *testing.T) {
	db := newTestDB(t)
	l := NewProfileLogic(db)

	for _, fid := range []string{"2001", "2002", "2003"} {
		_, _, err := l.UpsertProfile(&UpsertProfileInput{Fid: fid})
		require.NoError(t, err)
	}
	_, _, err := l.UpsertProfile(&UpsertProfileInput{
		Fid:    "2003",
		Wallet: "0xAbC0000000000000000000000000000000000001",
	})
	require.NoError(t, err)

	profiles, total, stats, err := l.ListProfiles(2, 0, "fid", true)
	require.NoError(t, err)

	assert.Equal(t, int64(3), total)
	require.Len(t, profiles, 2)
	assert.Equal(t, "2001", profiles[0].Fid)
	assert.Equal(t, "2002", profiles[1].Fid)
	assert.Equal(t, int64(3), stats.TotalProfiles)
	assert.Equal(t, int64(3), stats.ActiveInLast24h)
	assert.Equal(t, int64(1), stats.WithWallets)
}
