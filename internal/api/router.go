package api

import (
	"fmt"
	"net/http"
	"strconv"

	"nmjl-service/internal/card"
	"nmjl-service/internal/middleware"
	"nmjl-service/internal/service"
	"nmjl-service/internal/service/catalog"
	"nmjl-service/internal/ws"
	appErr "nmjl-service/pkg/errors"
	"nmjl-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	services *service.Container
}

func RegisterRoutes(r *gin.Engine, services *service.Container) {
	handler := &Handler{services: services}
	wsHandler := ws.NewHandler(services.Scoring)

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong"})
	})

	v1 := r.Group("/nmjlService/v1")
	{
		v1.GET("/templates", handler.ListTemplates)
		v1.GET("/hands", handler.ListHands)
		v1.GET("/hands/:handId", handler.GetHand)
		v1.GET("/runs/latest", handler.LatestRun)
		v1.POST("/suggest", handler.Suggest)
		v1.POST("/score", handler.Score)
	}

	adminGroup := r.Group("/admin")
	{
		adminGroup.POST("/auth/login", handler.AdminLogin)

		protected := adminGroup.Group("/")
		protected.Use(middleware.AdminAuthRequired())
		{
			protected.GET("/me", handler.AdminProfile)
			protected.POST("/catalog/rebuild", handler.AdminRebuildCatalog)
		}
	}

	r.GET("/ws/suggest", wsHandler.HandleSuggestWS)
}

type adminLoginBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type suggestBody struct {
	Tiles []string `json:"tiles" binding:"required"`
}

type scoreBody struct {
	Tiles  []string `json:"tiles" binding:"required"`
	HandID string   `json:"handId" binding:"required"`
}

type groupView struct {
	Group         string `json:"group"`
	Type          string `json:"type"`
	Values        string `json:"values"`
	Kind          string `json:"kind"`
	SuitRole      string `json:"suitRole"`
	JokersAllowed bool   `json:"jokersAllowed"`
	MustMatch     string `json:"mustMatch,omitempty"`
}

type templateView struct {
	UniqueID       string      `json:"uniqueId"`
	Section        string      `json:"section"`
	Line           int         `json:"line"`
	PatternID      int         `json:"patternId"`
	PatternKey     string      `json:"patternKey"`
	DisplayPattern string      `json:"displayPattern"`
	Description    string      `json:"description"`
	Points         int         `json:"points"`
	Difficulty     string      `json:"difficulty"`
	Concealed      bool        `json:"concealed"`
	Groups         []groupView `json:"groups"`
}

func newTemplateView(t card.Template) templateView {
	v := templateView{
		UniqueID:       t.CompositeID(),
		Section:        t.Section,
		Line:           t.Line,
		PatternID:      t.PatternID,
		PatternKey:     t.Key,
		DisplayPattern: t.DisplayPattern,
		Description:    t.Description,
		Points:         t.Points,
		Difficulty:     t.Difficulty,
		Concealed:      t.Concealed,
		Groups:         make([]groupView, 0, len(t.Groups)),
	}
	for _, g := range t.Groups {
		v.Groups = append(v.Groups, groupView{
			Group:         g.ID,
			Type:          string(g.Type),
			Values:        g.Values.Raw,
			Kind:          g.Values.Kind.String(),
			SuitRole:      string(g.Role),
			JokersAllowed: g.JokersAllowed,
			MustMatch:     g.MustMatch,
		})
	}
	return v
}

func (h *Handler) ListTemplates(c *gin.Context) {
	templates := h.services.Catalog.Templates()
	items := make([]templateView, 0, len(templates))
	for _, t := range templates {
		items = append(items, newTemplateView(t))
	}
	response.Success(c, gin.H{
		"version": h.services.Catalog.Version(),
		"items":   items,
		"total":   len(items),
	})
}

func (h *Handler) ListHands(c *gin.Context) {
	page, err := parsePositiveIntQuery(c, "page", 1)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	size, err := parsePositiveIntQuery(c, "size", 20)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	params := catalog.ListParams{
		Page:       page,
		Size:       size,
		RunID:      c.Query("runId"),
		Section:    c.Query("section"),
		PatternKey: c.Query("patternKey"),
	}
	if raw := c.Query("success"); raw != "" {
		ok, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid success")
			return
		}
		params.Success = &ok
	}

	result, err := h.services.Catalog.ListHands(c.Request.Context(), params)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Page(c, result.Items, result.Total, page, size)
}

func (h *Handler) GetHand(c *gin.Context) {
	rec, err := h.services.Catalog.GetHandRecord(c.Request.Context(), c.Param("handId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, rec)
}

func (h *Handler) LatestRun(c *gin.Context) {
	run, err := h.services.Catalog.LatestRun(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{
		"id":            run.ID,
		"cardVersion":   run.CardVersion,
		"year":          run.Year,
		"totalPatterns": run.TotalPatterns,
		"totalHands":    run.TotalHands,
		"successful":    run.Successful,
		"failed":        run.Failed,
		"skipped":       run.SkippedCount,
		"report":        run.ReportJSON,
		"createdAt":     run.CreatedAt,
	})
}

func (h *Handler) Suggest(c *gin.Context) {
	var body suggestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	sug, err := h.services.Scoring.Suggest(c.Request.Context(), body.Tiles)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, sug)
}

func (h *Handler) Score(c *gin.Context) {
	var body scoreBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.services.Scoring.ScoreAgainstHand(c.Request.Context(), body.Tiles, body.HandID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, res)
}

func (h *Handler) AdminLogin(c *gin.Context) {
	var body adminLoginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.services.Admin.Login(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, resp)
}

func (h *Handler) AdminProfile(c *gin.Context) {
	id, ok := getAdminID(c)
	if !ok {
		response.FromError(c, appErr.ErrUnauthorized)
		return
	}
	info, err := h.services.Admin.Profile(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, info)
}

// AdminRebuildCatalog reloads the card file and regenerates the catalog.
func (h *Handler) AdminRebuildCatalog(c *gin.Context) {
	if err := h.services.Catalog.Reload(); err != nil {
		response.FromError(c, err)
		return
	}
	gen, err := h.services.Catalog.Generate(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMsg(c, gin.H{
		"runId":   gen.Run.ID,
		"report":  gen.Report,
		"version": gen.Run.CardVersion,
	}, "catalog rebuilt")
}

func parsePositiveIntQuery(c *gin.Context, key string, defaultVal int) (int, error) {
	val := c.Query(key)
	if val == "" {
		return defaultVal, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return parsed, nil
}

func getAdminID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(middleware.ContextAdminIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
