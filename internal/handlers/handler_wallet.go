package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/afrilogistic/transport_marketplace/internal/core/ports/services"
	"github.com/afrilogistic/transport_marketplace/internal/dto"
	"github.com/afrilogistic/transport_marketplace/internal/middleware"
)

// WalletHandler handles wallet and ledger endpoints.
type WalletHandler struct {
	walletService portssvc.WalletSvcFacade
}

func newWalletHandler(ws portssvc.WalletSvcFacade) *WalletHandler {
	return &WalletHandler{walletService: ws}
}

// registerWalletRoutes sets up the wallet routes.
func registerWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade) {
	h := newWalletHandler(walletService)

	wallet := rg.Group("/wallet")
	{
		wallet.GET("", h.Get)
		wallet.GET("/balance", h.Balance)
		wallet.GET("/history", h.History)
		wallet.POST("/topup", h.TopUp)
		wallet.POST("/debit", h.Debit)
	}

	// Administrative views across all wallets
	wallets := rg.Group("/wallets")
	{
		wallets.GET("", h.ListAll)
		wallets.GET("/entries", h.ListAllEntries)
	}
}

// Get godoc
// @Summary Get wallet
// @Description Retrieves the caller's wallet, creating it on first access.
// @Tags wallet
// @Produce json
// @Success 200 {object} dto.WalletResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallet [get]
func (h *WalletHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	wallet, err := h.walletService.GetWallet(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// Balance godoc
// @Summary Get wallet balance
// @Description Retrieves the caller's current balance.
// @Tags wallet
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallet/balance [get]
func (h *WalletHandler) Balance(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	balance, err := h.walletService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// History godoc
// @Summary Wallet history
// @Description Lists the caller's ledger entries, newest first.
// @Tags wallet
// @Produce json
// @Param limit query int false "Maximum number of entries (default 100)"
// @Success 200 {array} dto.LedgerEntryResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallet/history [get]
func (h *WalletHandler) History(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	entries, err := h.walletService.History(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerEntryResponses(entries))
}

// TopUp godoc
// @Summary Top up wallet
// @Description Credits the caller's wallet. Bookkeeping only, no payment gateway.
// @Tags wallet
// @Accept json
// @Produce json
// @Param topup body dto.TopUpWalletRequest true "Amount to credit"
// @Success 200 {object} dto.WalletResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallet/topup [post]
func (h *WalletHandler) TopUp(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req dto.TopUpWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	wallet, err := h.walletService.Credit(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// Debit godoc
// @Summary Debit wallet
// @Description Debits the caller's wallet. Fails when the balance does not cover the amount.
// @Tags wallet
// @Accept json
// @Produce json
// @Param debit body dto.DebitWalletRequest true "Amount to debit"
// @Success 200 {object} dto.WalletResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse "Insufficient funds"
// @Security BearerAuth
// @Router /wallet/debit [post]
func (h *WalletHandler) Debit(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req dto.DebitWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	wallet, err := h.walletService.Debit(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// ListAll godoc
// @Summary List all wallets
// @Description Lists every wallet, highest balance first. Administrators only.
// @Tags wallet
// @Produce json
// @Success 200 {array} dto.WalletResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallets [get]
func (h *WalletHandler) ListAll(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	wallets, err := h.walletService.ListWallets(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.WalletResponse, len(wallets))
	for i := range wallets {
		out[i] = dto.ToWalletResponse(&wallets[i])
	}
	c.JSON(http.StatusOK, out)
}

// ListAllEntries godoc
// @Summary List all ledger entries
// @Description Lists ledger entries across all wallets, newest first. Administrators only.
// @Tags wallet
// @Produce json
// @Param limit query int false "Maximum number of entries (default 100)"
// @Success 200 {array} dto.LedgerEntryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallets/entries [get]
func (h *WalletHandler) ListAllEntries(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	entries, err := h.walletService.ListAllEntries(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerEntryResponses(entries))
}
