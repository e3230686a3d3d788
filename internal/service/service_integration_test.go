package service_test

import (
	"context"
	"testing"
	"time"

	"pharmacy_inventory/internal/repository"
	"pharmacy_inventory/internal/repository/db"
	"pharmacy_inventory/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteService(t *testing.T, now func() time.Time) *service.Service {
	t.Helper()
	conn, err := db.InitDB(context.Background(), ":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return service.NewService(repository.NewRepository(conn), service.Options{
		SessionSecret: []byte("integration-secret"),
		SessionTTL:    time.Hour,
		Now:           now,
	})
}

func TestSeed_OnlyOnFirstRun(t *testing.T) {
	today := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	svc := newSQLiteService(t, func() time.Time { return today })
	ctx := context.Background()

	res, err := svc.Seed(ctx, today)
	require.NoError(t, err)
	require.NotZero(t, res.AdminID)
	require.Len(t, res.Medicines, 3)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Paracetamol", all[0].Name)
	assert.Equal(t, "2027-10-17", all[0].ExpiryString())
	assert.Equal(t, "Ibuprofen", all[2].Name)
	assert.True(t, all[2].IsExpired(today), "Ibuprofen sample is past its expiry")
	assert.False(t, all[0].IsExpired(today))
	for _, m := range all {
		assert.Equal(t, res.AdminID, m.AddedBy)
	}

	again, err := svc.Seed(ctx, today)
	require.NoError(t, err)
	assert.Zero(t, again.AdminID)
	all, err = svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3, "second seed must not add samples")

	u, err := svc.Authenticate(ctx, service.SeedAdminUsername, service.SeedAdminPassword)
	require.NoError(t, err)
	assert.Equal(t, res.AdminID, u.ID)

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.TotalItems)
	assert.Equal(t, 170, sum.TotalUnits)
	assert.Equal(t, 1, sum.ExpiredItems)
	assert.InDelta(t, 100*10.50+50*25.00+20*15.75, sum.StockValue, 1e-9)
}

func TestSignUpLoginCreate_AttributesToSessionUser(t *testing.T) {
	svc := newSQLiteService(t, nil)
	ctx := context.Background()

	id, err := svc.SignUp(ctx, "pharmacist", "s3cret")
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, "pharmacist", "other")
	assert.ErrorIs(t, err, service.ErrDuplicateUsername)

	_, err = svc.Authenticate(ctx, "pharmacist", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	u, err := svc.Authenticate(ctx, "pharmacist", "s3cret")
	require.NoError(t, err)

	sess := svc.New()
	require.NoError(t, svc.Login(ctx, sess, u))
	token, err := svc.Token(sess)
	require.NoError(t, err)

	loaded, err := svc.Load(ctx, token)
	require.NoError(t, err)
	require.Equal(t, id, loaded.UserID)

	m, err := svc.Create(ctx, loaded.UserID, service.MedicineInput{
		Name: "Cetirizine", Manufacturer: "Sun", ExpiryDate: "2030-01-01", Quantity: "30", Price: "3.20",
	})
	require.NoError(t, err)
	got, err := svc.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, id, got.AddedBy)
}

func TestSummary_ExpiredCountMatchesIsExpiredInLocalZone(t *testing.T) {
	// 01:00 on 18 Oct in UTC+10 is still 17 Oct in UTC.
	now := time.Date(2026, 10, 18, 1, 0, 0, 0, time.FixedZone("UTC+10", 10*60*60))
	svc := newSQLiteService(t, func() time.Time { return now })
	ctx := context.Background()

	for _, expiry := range []string{"2026-10-17", "2026-10-18"} {
		_, err := svc.Create(ctx, 1, service.MedicineInput{
			Name: "Item " + expiry, Manufacturer: "Acme", ExpiryDate: expiry, Quantity: "1", Price: "1",
		})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	expired := 0
	for _, m := range all {
		if m.IsExpired(now) {
			expired++
		}
	}
	require.Equal(t, 1, expired, "the 17 Oct item is past its date on 18 Oct")

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, expired, sum.ExpiredItems)
	assert.Equal(t, time.UTC, sum.GeneratedAt.Location())
	assert.True(t, sum.GeneratedAt.Equal(now))
}
