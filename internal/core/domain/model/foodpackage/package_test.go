package foodpackage_test

import (
	"testing"
	"time"

	"foodbridge/internal/core/domain/model/foodpackage"
	"foodbridge/internal/core/domain/model/kernel"
	"foodbridge/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWindow(t *testing.T) kernel.TimeWindow {
	t.Helper()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	w, err := kernel.NewTimeWindow(start, start.Add(2*time.Hour))
	require.NoError(t, err)
	return w
}

func testLocation(t *testing.T) *kernel.GeoPoint {
	t.Helper()
	loc, err := kernel.NewGeoPoint(42.3601, -71.0589)
	require.NoError(t, err)
	return &loc
}

func newTestPackage(t *testing.T) *foodpackage.Package {
	t.Helper()
	p, err := foodpackage.NewPackage(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Flour Bakery",
		"123 Main St, Cambridge, MA",
		testLocation(t),
		5.2,
		"Bakery",
		"ring the back door bell",
		testWindow(t),
		time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return p
}

func TestNewPackage(t *testing.T) {
	t.Run("creates_pending_package_with_two_distinct_codes", func(t *testing.T) {
		p := newTestPackage(t)

		require.NoError(t, p.Validate())
		assert.Equal(t, foodpackage.Pending, p.Status())
		assert.Nil(t, p.Courier())
		assert.Nil(t, p.AssignedAt())
		assert.Nil(t, p.PickedUpAt())
		assert.Nil(t, p.CompletedAt())

		require.NoError(t, p.PickupCode().Validate())
		require.NoError(t, p.DeliveryCode().Validate())
		// Independent namespaces: codes are generated separately. They may
		// collide by chance (1 in 10^4), so assert independence structurally.
		assert.Len(t, p.PickupCode().Value(), kernel.AccessCodeLength)
		assert.Len(t, p.DeliveryCode().Value(), kernel.AccessCodeLength)
	})

	t.Run("accepts_missing_store_location", func(t *testing.T) {
		p, err := foodpackage.NewPackage(
			kernel.NewUUID(), kernel.NewUUID(),
			"Corner Market", "", nil,
			3.0, "Produce", "", testWindow(t), time.Now().UTC(),
		)

		require.NoError(t, err)
		assert.Nil(t, p.StoreLocation())
	})

	t.Run("rejects_non_positive_weight", func(t *testing.T) {
		for _, w := range []float64{0, -1.5} {
			_, err := foodpackage.NewPackage(
				kernel.NewUUID(), kernel.NewUUID(),
				"Corner Market", "", nil,
				w, "Produce", "", testWindow(t), time.Now().UTC(),
			)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, "weight %g", w)
		}
	})

	t.Run("rejects_empty_food_type", func(t *testing.T) {
		_, err := foodpackage.NewPackage(
			kernel.NewUUID(), kernel.NewUUID(),
			"Corner Market", "", nil,
			1.0, "", "", testWindow(t), time.Now().UTC(),
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_empty_store_name", func(t *testing.T) {
		_, err := foodpackage.NewPackage(
			kernel.NewUUID(), kernel.NewUUID(),
			"", "", nil,
			1.0, "Produce", "", testWindow(t), time.Now().UTC(),
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_unconstructed_window", func(t *testing.T) {
		_, err := foodpackage.NewPackage(
			kernel.NewUUID(), kernel.NewUUID(),
			"Corner Market", "", nil,
			1.0, "Produce", "", kernel.TimeWindow{}, time.Now().UTC(),
		)
		require.Error(t, err)
	})
}

func TestPackage_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var p foodpackage.Package

		err := p.Validate()

		require.Error(t, err)
		assert.Equal(t, foodpackage.ErrPackageIsNotConstructed, err)
	})

	t.Run("nil_is_invalid", func(t *testing.T) {
		var p *foodpackage.Package

		require.Error(t, p.Validate())
	})
}

func TestPackage_Assign(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

	t.Run("pending_package_is_assignable_once", func(t *testing.T) {
		p := newTestPackage(t)
		courierA := kernel.NewUUID()

		require.NoError(t, p.Assign(courierA, now))

		assert.Equal(t, foodpackage.Assigned, p.Status())
		require.NotNil(t, p.Courier())
		assert.True(t, p.Courier().IsEqual(courierA))
		require.NotNil(t, p.AssignedAt())
		assert.Equal(t, now, *p.AssignedAt())
	})

	t.Run("second_assign_conflicts_and_keeps_first_courier", func(t *testing.T) {
		p := newTestPackage(t)
		courierA := kernel.NewUUID()
		courierB := kernel.NewUUID()
		require.NoError(t, p.Assign(courierA, now))

		err := p.Assign(courierB, now.Add(time.Second))

		require.ErrorIs(t, err, errs.ErrStatusConflict)
		assert.True(t, p.Courier().IsEqual(courierA))
		assert.Equal(t, now, *p.AssignedAt())
	})

	t.Run("rejects_invalid_courier_id", func(t *testing.T) {
		p := newTestPackage(t)

		err := p.Assign(kernel.UUID{}, now)

		require.Error(t, err)
		assert.Equal(t, foodpackage.Pending, p.Status())
	})
}

func TestPackage_ConfirmPickup(t *testing.T) {
	now := time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)

	assigned := func(t *testing.T) (*foodpackage.Package, kernel.UUID) {
		t.Helper()
		p := newTestPackage(t)
		courier := kernel.NewUUID()
		require.NoError(t, p.Assign(courier, now.Add(-10*time.Minute)))
		return p, courier
	}

	t.Run("correct_courier_and_code_succeed", func(t *testing.T) {
		p, courier := assigned(t)

		require.NoError(t, p.ConfirmPickup(courier, p.PickupCode().Value(), now))

		assert.Equal(t, foodpackage.PickedUp, p.Status())
		require.NotNil(t, p.PickedUpAt())
		assert.Equal(t, now, *p.PickedUpAt())
	})

	t.Run("wrong_code_fails_without_state_change", func(t *testing.T) {
		p, courier := assigned(t)
		wrong := "0000"
		if p.PickupCode().Matches(wrong) {
			wrong = "1111"
		}

		err := p.ConfirmPickup(courier, wrong, now)

		require.ErrorIs(t, err, errs.ErrCodeVerificationFailed)
		assert.Equal(t, foodpackage.Assigned, p.Status())
		assert.Nil(t, p.PickedUpAt())
	})

	t.Run("wrong_courier_with_correct_code_fails_identically", func(t *testing.T) {
		p, _ := assigned(t)
		intruder := kernel.NewUUID()

		err := p.ConfirmPickup(intruder, p.PickupCode().Value(), now)

		require.ErrorIs(t, err, errs.ErrCodeVerificationFailed)
		// Externally indistinguishable from a wrong code.
		assert.Equal(t, errs.ErrCodeVerificationFailed.Error(), err.Error())
		assert.Equal(t, foodpackage.Assigned, p.Status())
	})

	t.Run("pending_package_conflicts", func(t *testing.T) {
		p := newTestPackage(t)

		err := p.ConfirmPickup(kernel.NewUUID(), p.PickupCode().Value(), now)

		require.ErrorIs(t, err, errs.ErrStatusConflict)
	})

	t.Run("repeat_confirmation_conflicts_and_preserves_timestamp", func(t *testing.T) {
		p, courier := assigned(t)
		require.NoError(t, p.ConfirmPickup(courier, p.PickupCode().Value(), now))

		err := p.ConfirmPickup(courier, p.PickupCode().Value(), now.Add(time.Minute))

		require.ErrorIs(t, err, errs.ErrStatusConflict)
		assert.Equal(t, now, *p.PickedUpAt())
	})
}

func TestPackage_ConfirmDelivery(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	pickedUp := func(t *testing.T) *foodpackage.Package {
		t.Helper()
		p := newTestPackage(t)
		courier := kernel.NewUUID()
		require.NoError(t, p.Assign(courier, now.Add(-time.Hour)))
		require.NoError(t, p.ConfirmPickup(courier, p.PickupCode().Value(), now.Add(-30*time.Minute)))
		return p
	}

	t.Run("correct_delivery_code_completes", func(t *testing.T) {
		p := pickedUp(t)

		require.NoError(t, p.ConfirmDelivery(p.DeliveryCode().Value(), now))

		assert.Equal(t, foodpackage.Completed, p.Status())
		require.NotNil(t, p.CompletedAt())
		assert.Equal(t, now, *p.CompletedAt())
	})

	t.Run("pickup_code_does_not_open_the_delivery_gate", func(t *testing.T) {
		p := pickedUp(t)
		if p.PickupCode().IsEqual(p.DeliveryCode()) {
			t.Skip("codes collided by chance; independence asserted elsewhere")
		}

		err := p.ConfirmDelivery(p.PickupCode().Value(), now)

		require.ErrorIs(t, err, errs.ErrCodeVerificationFailed)
		assert.Equal(t, foodpackage.PickedUp, p.Status())
	})

	t.Run("completed_package_is_terminal", func(t *testing.T) {
		p := pickedUp(t)
		require.NoError(t, p.ConfirmDelivery(p.DeliveryCode().Value(), now))

		// Codes remain stored for audit but gate nothing further.
		require.ErrorIs(t, p.ConfirmDelivery(p.DeliveryCode().Value(), now.Add(time.Minute)), errs.ErrStatusConflict)
		require.ErrorIs(t, p.ConfirmPickup(*p.Courier(), p.PickupCode().Value(), now.Add(time.Minute)), errs.ErrStatusConflict)
		require.ErrorIs(t, p.Assign(kernel.NewUUID(), now.Add(time.Minute)), errs.ErrStatusConflict)
		assert.Equal(t, now, *p.CompletedAt())
	})
}

// TestPackage_FullLifecycleScenario walks the canonical happy path with the
// adversarial steps interleaved: a losing second courier, a wrong pickup
// code, then pickup, delivery, and the terminal checks.
func TestPackage_FullLifecycleScenario(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	p := newTestPackage(t)
	require.Equal(t, foodpackage.Pending, p.Status())

	courierA := kernel.NewUUID()
	courierB := kernel.NewUUID()

	// Courier A wins the assignment.
	require.NoError(t, p.Assign(courierA, now))
	require.Equal(t, foodpackage.Assigned, p.Status())

	// Courier B loses.
	require.ErrorIs(t, p.Assign(courierB, now), errs.ErrStatusConflict)

	// Wrong pickup code leaves the package Assigned.
	wrong := "9999"
	if p.PickupCode().Matches(wrong) {
		wrong = "8888"
	}
	require.ErrorIs(t, p.ConfirmPickup(courierA, wrong, now), errs.ErrCodeVerificationFailed)
	require.Equal(t, foodpackage.Assigned, p.Status())

	// Correct code moves it along.
	require.NoError(t, p.ConfirmPickup(courierA, p.PickupCode().Value(), now.Add(time.Hour)))
	require.Equal(t, foodpackage.PickedUp, p.Status())

	require.NoError(t, p.ConfirmDelivery(p.DeliveryCode().Value(), now.Add(2*time.Hour)))
	require.Equal(t, foodpackage.Completed, p.Status())

	// Any further transition call conflicts.
	require.ErrorIs(t, p.Assign(courierB, now), errs.ErrStatusConflict)
	require.ErrorIs(t, p.ConfirmPickup(courierA, p.PickupCode().Value(), now), errs.ErrStatusConflict)
	require.ErrorIs(t, p.ConfirmDelivery(p.DeliveryCode().Value(), now), errs.ErrStatusConflict)

	// Courier never reassigned.
	assert.True(t, p.Courier().IsEqual(courierA))
}

func TestPackage_RewardPoints(t *testing.T) {
	mk := func(t *testing.T, weight float64) *foodpackage.Package {
		t.Helper()
		p, err := foodpackage.NewPackage(
			kernel.NewUUID(), kernel.NewUUID(),
			"Corner Market", "", nil,
			weight, "Produce", "", testWindow(t), time.Now().UTC(),
		)
		require.NoError(t, err)
		return p
	}

	assert.Equal(t, 76, mk(t, 5.2).RewardPoints())  // floor(26.0) + 50
	assert.Equal(t, 55, mk(t, 1.0).RewardPoints())  // floor(5.0) + 50
	assert.Equal(t, 51, mk(t, 0.3).RewardPoints())  // floor(1.5) + 50
	assert.Equal(t, 550, mk(t, 100).RewardPoints()) // floor(500) + 50

	t.Run("monotonically_increasing_in_weight", func(t *testing.T) {
		assert.LessOrEqual(t, mk(t, 2.0).RewardPoints(), mk(t, 3.0).RewardPoints())
	})
}

func TestRestorePackage(t *testing.T) {
	window := testWindow(t)
	pickupCode, err := kernel.AccessCodeFromString("1234")
	require.NoError(t, err)
	deliveryCode, err := kernel.AccessCodeFromString("5678")
	require.NoError(t, err)
	created := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("restores_assigned_package", func(t *testing.T) {
		courier := kernel.NewUUID()
		assignedAt := created.Add(time.Hour)

		p, err := foodpackage.RestorePackage(
			kernel.NewUUID(), kernel.NewUUID(),
			"Flour Bakery", "123 Main St", testLocation(t),
			5.2, "Bakery", "",
			window, pickupCode, deliveryCode,
			foodpackage.Assigned, &courier,
			created, &assignedAt, nil, nil,
		)

		require.NoError(t, err)
		assert.Equal(t, foodpackage.Assigned, p.Status())
		assert.True(t, p.Courier().IsEqual(courier))
		assert.True(t, p.PickupCode().Matches("1234"))
		assert.True(t, p.DeliveryCode().Matches("5678"))
	})

	t.Run("rejects_assigned_without_courier", func(t *testing.T) {
		_, err := foodpackage.RestorePackage(
			kernel.NewUUID(), kernel.NewUUID(),
			"Flour Bakery", "", nil,
			5.2, "Bakery", "",
			window, pickupCode, deliveryCode,
			foodpackage.Assigned, nil,
			created, nil, nil, nil,
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_pending_with_courier", func(t *testing.T) {
		courier := kernel.NewUUID()

		_, err := foodpackage.RestorePackage(
			kernel.NewUUID(), kernel.NewUUID(),
			"Flour Bakery", "", nil,
			5.2, "Bakery", "",
			window, pickupCode, deliveryCode,
			foodpackage.Pending, &courier,
			created, nil, nil, nil,
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_invalid_status", func(t *testing.T) {
		_, err := foodpackage.RestorePackage(
			kernel.NewUUID(), kernel.NewUUID(),
			"Flour Bakery", "", nil,
			5.2, "Bakery", "",
			window, pickupCode, deliveryCode,
			foodpackage.Unknown, nil,
			created, nil, nil, nil,
		)

		require.Error(t, err)
	})
}
