package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarium/internal/database/editions"
)

// publicationDateLayout is the wire format for dates in the API.
const publicationDateLayout = "2006-01-02"

// EditionStore is the edition catalog surface the HTTP layer depends on.
// Implemented by editions.Repository.
type EditionStore interface {
	InsertEdition(params editions.EditionParams) (uint, error)
	GetAllEditions() ([]editions.EditionLabel, error)
}

type EditionsController struct {
	store EditionStore
}

func NewEditionsController(store EditionStore) *EditionsController {
	return &EditionsController{store: store}
}

type createEditionRequest struct {
	BookID          uint   `json:"book_id"`
	Publisher       string `json:"publisher"`
	Language        string `json:"language"`
	Series          string `json:"series"`
	PageCount       int    `json:"page_count"`
	PublicationDate string `json:"publication_date"`
	ISBN            string `json:"isbn"`
	Type            string `json:"type"`
	CoverImagePath  string `json:"cover_image_path"`
}

// toParams converts the wire representation, parsing the optional
// publication date.
func (req createEditionRequest) toParams() (editions.EditionParams, error) {
	params := editions.EditionParams{
		BookID:         req.BookID,
		Publisher:      req.Publisher,
		Language:       req.Language,
		Series:         req.Series,
		PageCount:      req.PageCount,
		ISBN:           req.ISBN,
		Type:           req.Type,
		CoverImagePath: req.CoverImagePath,
	}
	if req.PublicationDate != "" {
		date, err := time.Parse(publicationDateLayout, req.PublicationDate)
		if err != nil {
			return editions.EditionParams{}, err
		}
		params.PublicationDate = &date
	}
	return params, nil
}

func (controller *EditionsController) CreateEdition(c *gin.Context) {
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

	id, err := controller.store.InsertEdition(params)
	if err != nil {
		respondStoreError(c, err, "create edition")
		return
	}
	respondCreated(c, gin.H{"id": id})
}

func (controller *EditionsController) GetAllEditions(c *gin.Context) {
	labels, err := controller.store.GetAllEditions()
	if err != nil {
		respondInternalError(c, err, "list editions")
		return
	}
	c.JSON(200, gin.H{"editions": labels, "count": len(labels)})
}
