package commands_test

import (
	"testing"

	"foodbridge/internal/core/application/usecases/commands"
	"foodbridge/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfirmPickupCommand_ValidInput(t *testing.T) {
	packageID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	cmd, err := commands.NewConfirmPickupCommand(packageID, courierID, "1234")
	require.NoError(t, err)
	assert.Equal(t, packageID, cmd.PackageID())
	assert.Equal(t, courierID, cmd.CourierID())
	assert.Equal(t, "1234", cmd.Code())
}

func TestNewConfirmPickupCommand_EmptyCode(t *testing.T) {
	_, err := commands.NewConfirmPickupCommand(kernel.NewUUID(), kernel.NewUUID(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCodeIsRequired)
}

func TestNewConfirmPickupCommand_InvalidIDs(t *testing.T) {
	_, err := commands.NewConfirmPickupCommand(kernel.UUID{}, kernel.UUID{}, "1234")
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewConfirmDeliveryCommand_ValidInput(t *testing.T) {
	packageID := kernel.NewUUID()
	cmd, err := commands.NewConfirmDeliveryCommand(packageID, "5678")
	require.NoError(t, err)
	assert.Equal(t, packageID, cmd.PackageID())
	assert.Equal(t, "5678", cmd.Code())
}

func TestNewConfirmDeliveryCommand_EmptyCode(t *testing.T) {
	_, err := commands.NewConfirmDeliveryCommand(kernel.NewUUID(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCodeIsRequired)
}

func TestNewDeletePackageCommand_ValidInput(t *testing.T) {
	packageID := kernel.NewUUID()
	cmd, err := commands.NewDeletePackageCommand(packageID)
	require.NoError(t, err)
	assert.Equal(t, packageID, cmd.PackageID())
}

func TestNewDeletePackageCommand_InvalidID(t *testing.T) {
	_, err := commands.NewDeletePackageCommand(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
