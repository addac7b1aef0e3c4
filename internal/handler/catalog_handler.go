package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stevomusembi/retroscore/internal/domain/repository"
	"github.com/stevomusembi/retroscore/internal/handler/dto"
)

// CatalogHandler отдает справочники клубов и сезонов
type CatalogHandler struct {
	clubRepo   repository.ClubRepository
	seasonRepo repository.SeasonRepository
}

// NewCatalogHandler создает новый обработчик справочников
func NewCatalogHandler(clubRepo repository.ClubRepository, seasonRepo repository.SeasonRepository) *CatalogHandler {
	return &CatalogHandler{
		clubRepo:   clubRepo,
		seasonRepo: seasonRepo,
	}
}

// GetClubs возвращает список всех клубов
func (h *CatalogHandler) GetClubs(c *gin.Context) {
	clubs, err := h.clubRepo.List()
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.ClubResponse, 0, len(clubs))
	for i := range clubs {
		responses = append(responses, dto.NewClubResponse(&clubs[i]))
	}

	c.JSON(http.StatusOK, gin.H{"clubs": responses, "total": len(responses)})
}

// GetSeasons возвращает список всех сезонов
func (h *CatalogHandler) GetSeasons(c *gin.Context) {
	seasons, err := h.seasonRepo.List()
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.SeasonResponse, 0, len(seasons))
	for i := range seasons {
		responses = append(responses, dto.NewSeasonResponse(&seasons[i]))
	}

	c.JSON(http.StatusOK, gin.H{"seasons": responses, "total": len(responses)})
}
