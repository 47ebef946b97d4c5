package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yurifrl/residentledger/pkg/models"
)

func TestResolve(t *testing.T) {
	idx := NewIndex([]*models.Resident{
		{ID: "r1", Name: "John Doe", Phone: "9999999999"},
		{ID: "r2", Name: "Asha", Phone: ""},
		{ID: "r3", Name: "Someone Else", Phone: "9999999999"},
	})

	t.Run("phone wins over name", func(t *testing.T) {
		id, ok := idx.Resolve("J. Doe", "9999999999")
		assert.True(t, ok)
		assert.Equal(t, "r1", id)
	})

	t.Run("composite key when phone is empty", func(t *testing.T) {
		id, ok := idx.Resolve("  ASHA ", "")
		assert.True(t, ok)
		assert.Equal(t, "r2", id)
	})

	t.Run("first match wins on shared composite key", func(t *testing.T) {
		id, ok := idx.Resolve("someone else", "9999999999")
		assert.True(t, ok)
		assert.Equal(t, "r1", id)
	})

	t.Run("unknown phone and name is new", func(t *testing.T) {
		_, ok := idx.Resolve("Asha", "9876543210")
		assert.False(t, ok)
	})
}

func TestAddDuringImport(t *testing.T) {
	idx := NewIndex(nil)
	_, ok := idx.Resolve("Meera", "9123456780")
	assert.False(t, ok)

	idx.Add(&models.Resident{ID: "new-1", Name: "Meera", Phone: "9123456780"})
	id, ok := idx.Resolve("Meera K", "9123456780")
	assert.True(t, ok)
	assert.Equal(t, "new-1", id)
	assert.Equal(t, 1, idx.Len())
}
