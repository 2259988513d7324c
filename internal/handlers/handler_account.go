package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/nonprofit_ledger/internal/core/ports/services"
	"github.com/SscSPs/nonprofit_ledger/internal/dto"
	"github.com/SscSPs/nonprofit_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	rg.GET("/categories", h.listCategories)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.POST("/seed", h.seedDefaultChart)
		accounts.GET("/resolve", h.resolveAccount)
		accounts.GET("/resolve-legacy", h.resolveLegacyAccount)
		accounts.GET("/:code", h.getAccount)
		accounts.PATCH("/:code", h.updateAccount)
		accounts.DELETE("/:code", h.deactivateAccount)
	}
}

// listCategories godoc
// @Summary List visible categories
// @Description Builds the category tree from the tenant's chart of accounts, ordered by account code
// @Tags accounts
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Success 200 {object} dto.ListCategoriesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list categories"
// @Security BearerAuth
// @Router /tenants/{tenantID}/categories [get]
func (h *accountHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	categories, err := h.accountService.ListCategoriesFromAccounts(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, logger, err, "Failed to list categories")
		return
	}

	logger.Info("Categories listed", slog.Int("count", len(categories)))
	c.JSON(http.StatusOK, dto.ListCategoriesResponse{Categories: categories})
}

// resolveAccount godoc
// @Summary Resolve a category label to an account code
// @Description A label without a matching account resolves to found=false
// @Tags accounts
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param category query string true "Category name"
// @Param subcategory query string false "Subcategory name"
// @Success 200 {object} dto.ResolveAccountResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to resolve account"
// @Security BearerAuth
// @Router /tenants/{tenantID}/accounts/resolve [get]
func (h *accountHandler) resolveAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ResolveAccountParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ResolveAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	code, found, err := h.accountService.ResolveByCategory(c.Request.Context(), c.Param("tenantID"), params.Category, params.Subcategory)
	if err != nil {
		respondError(c, logger, err, "Failed to resolve account")
		return
	}
	c.JSON(http.StatusOK, toResolveResponse(code, found))
}

// resolveLegacyAccount godoc
// @Summary Resolve a legacy category ID to an account code
// @Tags accounts
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param categoryId query string true "Legacy category ID"
// @Param subcategoryId query string false "Legacy subcategory ID"
// @Success 200 {object} dto.ResolveAccountResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to resolve account"
// @Security BearerAuth
// @Router /tenants/{tenantID}/accounts/resolve-legacy [get]
func (h *accountHandler) resolveLegacyAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ResolveLegacyAccountParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ResolveLegacyAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	code, found, err := h.accountService.ResolveByLegacyID(c.Request.Context(), c.Param("tenantID"), params.CategoryID, params.SubcategoryID)
	if err != nil {
		respondError(c, logger, err, "Failed to resolve account")
		return
	}
	c.JSON(http.StatusOK, toResolveResponse(code, found))
}

func toResolveResponse(code string, found bool) dto.ResolveAccountResponse {
	if !found {
		return dto.ResolveAccountResponse{}
	}
	return dto.ResolveAccountResponse{Code: &code, Found: true}
}

// createAccount godoc
// @Summary Create a new account
// @Description Adds an account to the tenant's chart. Codes are unique per tenant.
// @Tags accounts
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.CreateAccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Account code already exists"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /tenants/{tenantID}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := operatorFromContext(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to create account", slog.String("code", req.Code), slog.String("type", string(req.Type)))

	code, err := h.accountService.CreateAccount(c.Request.Context(), c.Param("tenantID"), req, operatorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.String("code", code))
	c.JSON(http.StatusCreated, dto.CreateAccountResponse{Code: code})
}

// getAccount godoc
// @Summary Get an account by code
// @Tags accounts
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param code path string true "Account code"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /tenants/{tenantID}/accounts/{code} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("code", c.Param("code")))

	account, err := h.accountService.GetAccount(c.Request.Context(), c.Param("tenantID"), c.Param("code"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates the mutable fields of an account. Code, type and display mode are fixed.
// @Tags accounts
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param code path string true "Account code"
// @Param account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to update account"
// @Security BearerAuth
// @Router /tenants/{tenantID}/accounts/{code} [patch]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("code", c.Param("code")))
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := operatorFromContext(c, logger)
	if !ok {
		return
	}

	updated, err := h.accountService.UpdateAccount(c.Request.Context(), c.Param("tenantID"), c.Param("code"), req, operatorID)
	if err != nil {
		respondError(c, logger, err, "Failed to update account")
		return
	}

	logger.Info("Account updated successfully")
	c.JSON(http.StatusOK, dto.ToAccountResponse(updated))
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Marks an account as inactive. Accounts are never hard-deleted.
// @Tags accounts
// @Param tenantID path string true "Tenant ID"
// @Param code path string true "Account code"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to deactivate account"
// @Security BearerAuth
// @Router /tenants/{tenantID}/accounts/{code} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("code", c.Param("code")))

	operatorID, ok := operatorFromContext(c, logger)
	if !ok {
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), c.Param("tenantID"), c.Param("code"), operatorID); err != nil {
		respondError(c, logger, err, "Failed to deactivate account")
		return
	}

	logger.Info("Account deactivated")
	c.Status(http.StatusNoContent)
}

// seedDefaultChart godoc
// @Summary Seed the default chart of accounts
// @Description Creates the accounts of the default chart that the tenant does not have yet
// @Tags accounts
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Success 200 {object} domain.SeedSummary
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to seed chart"
// @Security BearerAuth
// @Router /tenants/{tenantID}/accounts/seed [post]
func (h *accountHandler) seedDefaultChart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	operatorID, ok := operatorFromContext(c, logger)
	if !ok {
		return
	}

	summary, err := h.accountService.SeedDefaultChart(c.Request.Context(), c.Param("tenantID"), operatorID)
	if err != nil {
		respondError(c, logger, err, "Failed to seed chart")
		return
	}

	logger.Info("Chart seeded", slog.Int("created", len(summary.Created)), slog.Int("skipped", len(summary.Skipped)))
	c.JSON(http.StatusOK, summary)
}
