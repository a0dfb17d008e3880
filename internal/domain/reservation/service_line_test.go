//go:build unit

package reservation_test

import (
	"testing"

	"wellness-booking/internal/domain/money"
	"wellness-booking/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceLine(t *testing.T) {
	t.Run("expert quantity is fixed at one", func(t *testing.T) {
		l, err := reservation.NewServiceLine("svc-1", "Massage", 100_000, 4, reservation.CategoryExpert)
		require.NoError(t, err)
		assert.Equal(t, 1, l.Quantity)
		assert.Equal(t, money.Money(100_000), l.Total())
	})

	t.Run("extra quantity bounds", func(t *testing.T) {
		cases := []struct {
			name  string
			qty   int
			errIs error
		}{
			{name: "minimum", qty: 1},
			{name: "maximum", qty: 10},
			{name: "zero", qty: 0, errIs: reservation.ErrInvalidQuantity},
			{name: "eleven", qty: 11, errIs: reservation.ErrInvalidQuantity},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				l, err := reservation.NewExtraLine("svc-tea", "Tea", 20_000, tc.qty)
				if tc.errIs != nil {
					require.ErrorIs(t, err, tc.errIs)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, money.Money(20_000*int64(tc.qty)), l.Total())
			})
		}
	})

	t.Run("validation", func(t *testing.T) {
		_, err := reservation.NewExpertLine(" ", "", 1)
		require.ErrorIs(t, err, reservation.ErrEmptyServiceName)

		_, err = reservation.NewExpertLine("svc", "Massage", -1)
		require.ErrorIs(t, err, reservation.ErrNegativeServiceFee)

		_, err = reservation.ParseCategory("premium")
		require.ErrorIs(t, err, reservation.ErrInvalidCategory)
	})

	t.Run("identity prefers id over name", func(t *testing.T) {
		a, _ := reservation.NewExpertLine("svc-1", "Massage", 1)
		b, _ := reservation.NewExpertLine("svc-1", "Thai Massage", 1)
		c, _ := reservation.NewExpertLine("", " MASSAGE ", 1)
		d, _ := reservation.NewExpertLine("", "massage", 1)
		assert.Equal(t, a.Key(), b.Key())
		assert.Equal(t, c.Key(), d.Key())
		assert.NotEqual(t, a.Key(), c.Key())
	})
}
