package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"corralon_backend/internal/budgets/repository"
	"corralon_backend/internal/budgets/service"
	"corralon_backend/internal/budgets/transport"
	"corralon_backend/internal/pdf"
	"corralon_backend/platform/httpkit"
)

const (
	msgItemsRequired  = "no se proporcionaron items para el presupuesto"
	msgBudgetRequired = "no se proporcionaron datos del presupuesto"
	msgBudgetSaved    = "presupuesto guardado exitosamente"
	msgBudgetCreated  = "presupuesto generado exitosamente"
)

// Handler handles HTTP requests for budgets.
type Handler struct {
	svc      *service.Service
	repo     *repository.FileRepository
	renderer *pdf.Renderer
}

// New creates a new budgets handler.
func New(svc *service.Service, repo *repository.FileRepository, renderer *pdf.Renderer) *Handler {
	return &Handler{svc: svc, repo: repo, renderer: renderer}
}

// Generate assembles a budget from items and client info.
// POST /api/v1/budget/generate
func (h *Handler) Generate(c *gin.Context) {
	budget, ok := h.assembleFromRequest(c)
	if !ok {
		return
	}
	httpkit.OK(c, transport.BudgetResponse{Budget: budget, Message: msgBudgetCreated})
}

// ChatGenerate assembles a budget for the chat flow.
// POST /api/v1/chat/generate-budget
func (h *Handler) ChatGenerate(c *gin.Context) {
	budget, ok := h.assembleFromRequest(c)
	if !ok {
		return
	}
	httpkit.OK(c, transport.BudgetResponse{Budget: budget})
}

func (h *Handler) assembleFromRequest(c *gin.Context) (transport.Budget, bool) {
	var req transport.GenerateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		httpkit.Error(c, http.StatusBadRequest, msgItemsRequired, nil)
		return transport.Budget{}, false
	}
	return h.svc.Assemble(c.Request.Context(), req.Items, req.ClientInfo), true
}

// GeneratePDF renders a budget document and returns it as a download.
// POST /api/v1/budget/generate-pdf
func (h *Handler) GeneratePDF(c *gin.Context) {
	var req transport.GeneratePDFRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Budget == nil {
		httpkit.Error(c, http.StatusBadRequest, msgBudgetRequired, nil)
		return
	}

	document, err := h.renderer.RenderBudget(*req.Budget)
	if httpkit.HandleError(c, err) {
		return
	}

	name := req.Budget.ID
	if name == "" {
		name = "HDL"
	}
	sendPDF(c, "presupuesto_"+name+".pdf", document)
}

// QuickPDF renders a minimal budget document directly from items.
// POST /api/v1/budget/quick-pdf
func (h *Handler) QuickPDF(c *gin.Context) {
	var req transport.QuickPDFRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		httpkit.Error(c, http.StatusBadRequest, msgItemsRequired, nil)
		return
	}

	budget := h.svc.AssembleQuick(req.Items, req.ClientName)
	document, err := h.renderer.RenderBudget(budget)
	if httpkit.HandleError(c, err) {
		return
	}

	sendPDF(c, "presupuesto_rapido_"+budget.CreatedAt.Format("20060102_150405")+".pdf", document)
}

// Save stores a budget on disk.
// POST /api/v1/budget/save
func (h *Handler) Save(c *gin.Context) {
	var req transport.SaveBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Budget == nil {
		httpkit.Error(c, http.StatusBadRequest, msgBudgetRequired, nil)
		return
	}

	budget := *req.Budget
	if budget.ID == "" {
		budget.ID = h.svc.NewID()
	}

	path, err := h.repo.Save(budget)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.SaveBudgetResponse{
		Message:  msgBudgetSaved,
		BudgetID: budget.ID,
		FilePath: path,
	})
}

// List returns all stored budgets, newest first.
// GET /api/v1/budget/list
func (h *Handler) List(c *gin.Context) {
	budgets, err := h.repo.List()
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ListBudgetsResponse{Budgets: budgets})
}

// Get returns one stored budget by id.
// GET /api/v1/budget/:id
func (h *Handler) Get(c *gin.Context) {
	budget, err := h.repo.Get(c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"budget": budget})
}

func sendPDF(c *gin.Context, filename string, document []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", document)
}
