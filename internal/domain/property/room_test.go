package property

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoom(t *testing.T) *Room {
	t.Helper()
	room, err := NewRoom(uuid.New(), "A-01", valueobject.NewMoneyIDRFromInt(2800000), true)
	require.NoError(t, err)
	return room
}

func TestNewRoom(t *testing.T) {
	room := testRoom(t)
	assert.Equal(t, RoomStatusAvailable, room.Status)
	assert.Equal(t, 1, room.OccupantCount)
	assert.Nil(t, room.TenantID)
	assert.Nil(t, room.MoveInDate)

	_, err := NewRoom(uuid.Nil, "A-01", valueobject.NewMoneyIDRFromInt(1), true)
	assert.Error(t, err)
	_, err = NewRoom(uuid.New(), "", valueobject.NewMoneyIDRFromInt(1), true)
	assert.Error(t, err)
	_, err = NewRoom(uuid.New(), "A-01", valueobject.NewMoneyIDRFromInt(-1), true)
	assert.Error(t, err)
}

func TestRoom_AssignTenant(t *testing.T) {
	room := testRoom(t)
	tenantID := uuid.New()
	moveIn := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

	require.NoError(t, room.AssignTenant(tenantID, moveIn, 2))

	assert.Equal(t, RoomStatusOccupied, room.Status)
	require.NotNil(t, room.TenantID)
	assert.Equal(t, tenantID, *room.TenantID)
	require.NotNil(t, room.MoveInDate)
	assert.Equal(t, moveIn, *room.MoveInDate)
	assert.Equal(t, 2, room.OccupantCount)
	assert.True(t, room.IsOccupied())

	// Occupied rooms refuse a second assignment
	err := room.AssignTenant(uuid.New(), moveIn, 1)
	assert.Error(t, err)
}

func TestRoom_AssignTenant_Validation(t *testing.T) {
	room := testRoom(t)
	moveIn := time.Now()

	assert.Error(t, room.AssignTenant(uuid.Nil, moveIn, 1))
	assert.Error(t, room.AssignTenant(uuid.New(), moveIn, 0))

	require.NoError(t, room.Update("A-01", room.BasePrice, RoomStatusMaintenance, true, 1, ""))
	assert.Error(t, room.AssignTenant(uuid.New(), moveIn, 1))
}

func TestRoom_Vacate(t *testing.T) {
	room := testRoom(t)
	require.NoError(t, room.AssignTenant(uuid.New(), time.Now(), 2))

	require.NoError(t, room.Vacate())
	assert.Equal(t, RoomStatusAvailable, room.Status)
	assert.Nil(t, room.TenantID)
	assert.Nil(t, room.MoveInDate)
	assert.Equal(t, 1, room.OccupantCount)

	assert.Error(t, room.Vacate())
}

func TestRoom_Update(t *testing.T) {
	room := testRoom(t)

	require.NoError(t, room.Update("A-02", valueobject.NewMoneyIDRFromInt(3000000), RoomStatusMaintenance, false, 1, "repainting"))
	assert.Equal(t, "A-02", room.Name)
	assert.Equal(t, RoomStatusMaintenance, room.Status)
	assert.False(t, room.UseTrashService)

	assert.Error(t, room.Update("", room.BasePrice, RoomStatusAvailable, true, 1, ""))
	assert.Error(t, room.Update("A-02", room.BasePrice, RoomStatus("GONE"), true, 1, ""))
	assert.Error(t, room.Update("A-02", room.BasePrice, RoomStatusAvailable, true, 0, ""))
}

func TestNewProperty(t *testing.T) {
	p, err := NewProperty("Kost Melati", "Jl. Melati 12", "")
	require.NoError(t, err)
	assert.Equal(t, "Kost Melati", p.Name)

	_, err = NewProperty("", "addr", "")
	assert.Error(t, err)
}

func TestNewTenant(t *testing.T) {
	tn, err := NewTenant("Budi", "+62812345678", "3201xxxxxxxx", "")
	require.NoError(t, err)
	assert.Equal(t, "Budi", tn.Name)

	_, err = NewTenant("", "", "", "")
	assert.Error(t, err)
}
