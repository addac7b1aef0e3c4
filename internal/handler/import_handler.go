package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stevomusembi/retroscore/internal/service"
)

// ImportHandler обрабатывает административный импорт исторических матчей
type ImportHandler struct {
	importService *service.ImportService
}

// NewImportHandler создает новый обработчик импорта
func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
	}
}

// ImportMatches принимает CSV или XLSX файл с матчами одного сезона.
// Формат файла определяется по расширению. Имя сезона передается
// полем формы season (например "2015/2016").
func (h *ImportHandler) ImportMatches(c *gin.Context) {
	seasonName := strings.TrimSpace(c.PostForm("season"))
	if seasonName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Season name is required", "error_type": "validation_error"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Match data file is required", "error_type": "validation_error"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read uploaded file", "error_type": "validation_error"})
		return
	}
	defer file.Close()

	var summary *service.ImportSummary
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".csv":
		summary, err = h.importService.ImportCSV(file, seasonName)
	case ".xlsx":
		summary, err = h.importService.ImportXLSX(file, seasonName)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file format, expected .csv or .xlsx", "error_type": "validation_error"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
