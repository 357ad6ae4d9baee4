package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarium/internal/database/library"
	"github.com/mrlokans/librarium/internal/entities"
)

// LibraryStore is the personal-library surface the HTTP layer depends
// on. Implemented by library.Repository.
type LibraryStore interface {
	InsertEntry(params library.EntryParams) (uint, error)
	GetAllEntries() ([]entities.LibraryEntry, error)
}

type LibraryController struct {
	store LibraryStore
}

func NewLibraryController(store LibraryStore) *LibraryController {
	return &LibraryController{store: store}
}

type createEntryRequest struct {
	RItemID      uint    `json:"r_item_id"`
	AcquiredFrom string  `json:"acquired_from"`
	AcquiredDate string  `json:"acquired_date"`
	Price        float64 `json:"price"`
	ShelfName    string  `json:"shelf_name"`
	Notes        string  `json:"notes"`
}

func (controller *LibraryController) CreateEntry(c *gin.Context) {
	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	params := library.EntryParams{
		RItemID:      req.RItemID,
		AcquiredFrom: req.AcquiredFrom,
		Price:        req.Price,
		ShelfName:    req.ShelfName,
		Notes:        req.Notes,
	}
	if req.AcquiredDate != "" {
		date, err := time.Parse(publicationDateLayout, req.AcquiredDate)
		if err != nil {
			respondBadRequest(c, "invalid acquired_date, expected YYYY-MM-DD")
			return
		}
		params.AcquiredDate = &date
	}

	id, err := controller.store.InsertEntry(params)
	if err != nil {
		respondStoreError(c, err, "create library entry")
		return
	}
	respondCreated(c, gin.H{"id": id})
}

func (controller *LibraryController) GetAllEntries(c *gin.Context) {
	entries, err := controller.store.GetAllEntries()
	if err != nil {
		respondInternalError(c, err, "list library entries")
		return
	}
	c.JSON(200, gin.H{"entries": entries, "count": len(entries)})
}
