package logic

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// LineIDSource hands out cart line identities.
type LineIDSource interface {
	NextLineID(menuItemID string) string
}

// RandomLineIDs prefixes the menu item id to a random UUID, so two adds
// of the same dish in the same instant never collide.
type RandomLineIDs struct{}

func (RandomLineIDs) NextLineID(menuItemID string) string {
	return menuItemID + "-" + uuid.NewString()
}

// SequentialLineIDs numbers lines with an in-process counter. Useful
// where ids must be predictable, such as tests.
type SequentialLineIDs struct {
	n atomic.Uint64
}

func (s *SequentialLineIDs) NextLineID(menuItemID string) string {
	return menuItemID + "-" + strconv.FormatUint(s.n.Add(1), 10)
}

// CartNamespace is the UUID namespace for cart roots.
var CartNamespace = uuid.MustParse("1d3f2c8e-5a4b-5e0f-9c7d-6b2a8e4f0c11")

// CartRoot derives a stable cart identifier from a session id.
func CartRoot(sessionID string) uuid.UUID {
	return uuid.NewSHA1(CartNamespace, []byte("rayan-eats"+sessionID))
}
