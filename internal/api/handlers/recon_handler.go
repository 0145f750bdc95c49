package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/salesrecon/internal/ingest"
	"github.com/andresuchdata/salesrecon/internal/pipeline"
	"github.com/andresuchdata/salesrecon/internal/service"
)

type ReconHandler struct {
	reconService *service.ReconService
}

func NewReconHandler(reconService *service.ReconService) *ReconHandler {
	return &ReconHandler{reconService: reconService}
}

// ProcessRecon accepts the four input tables as a multipart upload
// (fields: sales, clients, products, history) and responds with the
// full reconciliation result, or a single error payload when the run
// is rejected.
func (h *ReconHandler) ProcessRecon(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	tables := make(map[string]pipeline.Table, 4)
	var openFiles []multipart.File
	defer func() {
		for _, f := range openFiles {
			f.Close()
		}
	}()

	for _, field := range []string{"sales", "clients", "products", "history"} {
		headers := form.File[field]
		if len(headers) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field: " + field})
			return
		}
		header := headers[0]

		f, err := header.Open()
		if err != nil {
			log.Error().Err(err).Str("field", field).Msg("failed to open uploaded file")
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file: " + header.Filename})
			return
		}
		openFiles = append(openFiles, f)

		tables[field] = pipeline.Table{
			Label:  header.Filename,
			Format: ingest.FormatForFilename(header.Filename),
			Reader: f,
		}
	}

	result, err := h.reconService.Process(c.Request.Context(), pipeline.Inputs{
		Sales:    tables["sales"],
		Clients:  tables["clients"],
		Products: tables["products"],
		History:  tables["history"],
	})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
