package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarium/internal/database/editions"
	"github.com/mrlokans/librarium/internal/database/items"
)

// ItemStore is the readable-item surface the HTTP layer depends on.
// Implemented by items.Repository.
type ItemStore interface {
	WrapEdition(params editions.EditionParams) (uint, error)
	GetAllItems() ([]items.ItemLabel, error)
}

type ItemsController struct {
	store ItemStore
}

func NewItemsController(store ItemStore) *ItemsController {
	return &ItemsController{store: store}
}

// WrapEdition inserts an edition and wraps it as a readable item in one
// call; the request body is the same as for creating a bare edition.
func (controller *ItemsController) WrapEdition(c *gin.Context) {
	var req createEditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	params, err := req.toParams()
	if err != nil {
		respondBadRequest(c, "invalid publication_date, expected YYYY-MM-DD")
		return
	}

	id, err := controller.store.WrapEdition(params)
	if err != nil {
		respondStoreError(c, err, "wrap edition")
		return
	}
	respondCreated(c, gin.H{"id": id})
}

func (controller *ItemsController) GetAllItems(c *gin.Context) {
	labels, err := controller.store.GetAllItems()
	if err != nil {
		respondInternalError(c, err, "list items")
		return
	}
	c.JSON(200, gin.H{"items": labels, "count": len(labels)})
}
