package uow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainbooking "campusrent/internal/domain/booking"
	domainproduct "campusrent/internal/domain/product"
	domainreviews "campusrent/internal/domain/reviews"
	domainuser "campusrent/internal/domain/user"
)

type plainUnit struct{}

func (plainUnit) Products() domainproduct.Repository { return nil }
func (plainUnit) Bookings() domainbooking.Repository { return nil }
func (plainUnit) Reviews() domainreviews.Repository  { return nil }
func (plainUnit) Users() domainuser.Repository       { return nil }
func (plainUnit) Commit(ctx context.Context) error   { return nil }
func (plainUnit) Rollback(ctx context.Context) error { return nil }

type sessionKey struct{}

// sessionUnit mimics a storage-backed unit that must put its session into the
// execution context before repositories can use it.
type sessionUnit struct {
	plainUnit
	session string
}

func (u *sessionUnit) InjectContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, sessionKey{}, u.session)
}

func TestAttachInjectsExecutionContext(t *testing.T) {
	unit := &sessionUnit{session: "sess-1"}

	ctx := Attach(context.Background(), unit)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, unit, got)
	assert.Equal(t, "sess-1", ctx.Value(sessionKey{}), "repository calls must see the unit's session")
}

func TestAttachWithoutInjectorStoresUnit(t *testing.T) {
	unit := plainUnit{}

	ctx := Attach(context.Background(), unit)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, unit, got)
	assert.Nil(t, ctx.Value(sessionKey{}))
}

func TestFromContextMissing(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
}
