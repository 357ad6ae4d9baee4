package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarium/internal/database/identities"
)

// LookupStore serves the name lists behind selection controls and
// autocomplete. Implemented by identities.Registry.
type LookupStore interface {
	AllNames(kind identities.Kind) ([]string, error)
}

type LookupsController struct {
	store LookupStore
}

func NewLookupsController(store LookupStore) *LookupsController {
	return &LookupsController{store: store}
}

// GetNames lists every registered name for a taxonomy kind,
// lexicographically ordered.
func (controller *LookupsController) GetNames(c *gin.Context) {
	kind, ok := identities.ParseKind(c.Param("kind"))
	if !ok {
		respondBadRequest(c, "unknown lookup kind: "+c.Param("kind"))
		return
	}

	names, err := controller.store.AllNames(kind)
	if err != nil {
		respondInternalError(c, err, "lookup names")
		return
	}
	c.JSON(200, gin.H{"kind": kind, "names": names})
}
