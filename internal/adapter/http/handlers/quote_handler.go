package handlers

import (
	"errors"
	"net/http"

	request "agency_quotes/internal/adapter/http/dto/request"
	response "agency_quotes/internal/adapter/http/dto/response"
	"agency_quotes/internal/adapter/http/middleware"
	"agency_quotes/internal/infrastructure/logger"
	"agency_quotes/internal/usecase"
	"agency_quotes/pkg"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var (
	errInvalidQuotePayload = pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Données du devis invalides", http.StatusBadRequest)
	errInvalidSignPayload  = pkg.NewDomainErrorSimple("INVALID_SIGNATURE_INPUT", "Signature manquante", http.StatusBadRequest)
	errUnauthenticated     = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentification requise", http.StatusUnauthorized)
)

// QuoteHandler exposes the quote lifecycle over HTTP.
type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
	log     logrus.FieldLogger
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	log := logger.Get().WithField("module", "quote_handler")
	if err := request.RegisterValidators(); err != nil {
		log.WithError(err).Error("custom validators not registered")
	}
	return &QuoteHandler{usecase: uc, log: log}
}

// CreateQuote issues the quote of an existing project. A pending quote for the
// project is resent instead and answered with 200.
//
// @Summary      Issue a quote for a project
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        request  body      request.CreateQuoteRequest  true  "Quote"
// @Success      201      {object}  response.ActionResponse
// @Success      200      {object}  response.ActionResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Failure      409      {object}  pkg.HTTPError
// @Failure      502      {object}  pkg.HTTPError
// @Router       /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	res, err := h.usecase.Create(c.Request.Context(), payload.ToCommand())
	if err != nil {
		h.fail(c, err)
		return
	}

	status := http.StatusCreated
	if res.Resent {
		status = http.StatusOK
	}
	c.JSON(status, response.FromCreateResult(res))
}

// CreateStandaloneQuote provisions the prospect account and project, then issues the quote.
//
// @Summary      Issue a quote for a new prospect
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        request  body      request.CreateStandaloneQuoteRequest  true  "Prospect and quote"
// @Success      201      {object}  response.StandaloneQuoteResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      502      {object}  pkg.HTTPError
// @Router       /quotes/standalone [post]
func (h *QuoteHandler) CreateStandaloneQuote(c *gin.Context) {
	var payload request.CreateStandaloneQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}
	cmd, err := payload.ToCommand()
	if err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	res, err := h.usecase.CreateStandalone(c.Request.Context(), cmd)
	if err != nil {
		h.fail(c, err)
		return
	}

	status := http.StatusCreated
	if res.Resent {
		status = http.StatusOK
	}
	c.JSON(status, response.FromStandaloneResult(res))
}

// @Summary      Resend a pending quote
// @Tags         quotes
// @Produce      json
// @Security     Bearer
// @Param        quote_id  path      string  true  "Quote ID"
// @Success      200       {object}  response.ActionResponse
// @Failure      404       {object}  pkg.HTTPError
// @Failure      409       {object}  pkg.HTTPError
// @Router       /quotes/{quote_id}/resend [post]
func (h *QuoteHandler) ResendQuote(c *gin.Context) {
	q, err := h.usecase.Resend(c.Request.Context(), c.Param("quote_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromResend(q))
}

// @Summary      Delete a quote
// @Tags         quotes
// @Produce      json
// @Security     Bearer
// @Param        quote_id  path      string  true  "Quote ID"
// @Success      200       {object}  response.ActionResponse
// @Failure      404       {object}  pkg.HTTPError
// @Router       /quotes/{quote_id} [delete]
func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	quoteID := c.Param("quote_id")
	if err := h.usecase.Delete(c.Request.Context(), quoteID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Deleted(quoteID))
}

// SignQuote answers 200 even when the deposit checkout could not be opened;
// checkout_error tells the signer about it.
//
// @Summary      Sign a pending quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        quote_id  path      string                    true  "Quote ID"
// @Param        request   body      request.SignQuoteRequest  true  "Signature"
// @Success      200       {object}  response.SignQuoteResponse
// @Failure      400       {object}  pkg.HTTPError
// @Failure      403       {object}  pkg.HTTPError
// @Failure      409       {object}  pkg.HTTPError
// @Router       /quotes/{quote_id}/sign [post]
func (h *QuoteHandler) SignQuote(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
		return
	}
	var payload request.SignQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidSignPayload.HTTPStatus, errInvalidSignPayload.ToHTTPError())
		return
	}

	res, err := h.usecase.Sign(c.Request.Context(), usecase.SignQuoteCommand{
		QuoteID:   c.Param("quote_id"),
		Signature: payload.Signature,
		Signer:    actor,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromSignResult(res))
}

// @Summary      Get a quote
// @Tags         quotes
// @Produce      json
// @Security     Bearer
// @Param        quote_id  path      string  true  "Quote ID"
// @Success      200       {object}  response.QuoteResponse
// @Failure      403       {object}  pkg.HTTPError
// @Failure      404       {object}  pkg.HTTPError
// @Router       /quotes/{quote_id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
		return
	}
	q, err := h.usecase.Get(c.Request.Context(), c.Param("quote_id"), actor)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// GetLatestDeposit returns the most recent deposit checkout opened for the quote.
//
// @Summary      Latest deposit checkout of a quote
// @Tags         quotes
// @Produce      json
// @Security     Bearer
// @Param        quote_id  path      string  true  "Quote ID"
// @Success      200       {object}  response.DepositResponse
// @Failure      404       {object}  pkg.HTTPError
// @Router       /quotes/{quote_id}/deposit [get]
func (h *QuoteHandler) GetLatestDeposit(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
		return
	}
	d, err := h.usecase.LatestDeposit(c.Request.Context(), c.Param("quote_id"), actor)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromDeposit(d))
}

func (h *QuoteHandler) fail(c *gin.Context, err error) {
	appErr := mapQuoteError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.LogError(h.log, "quote_handler", c.HandlerName(), c.FullPath(), map[string]string{"quote_id": c.Param("quote_id")}, err)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

var validationMessages = map[error]string{
	usecase.ErrInvalidQuoteID:      "Identifiant de devis invalide",
	usecase.ErrInvalidProjectID:    "Identifiant de projet invalide",
	usecase.ErrMissingContactEmail: "Aucun email de contact n'est associé à ce projet",
	usecase.ErrInvalidEmail:        "Adresse email invalide",
	usecase.ErrInvalidContactName:  "Le nom du contact est requis",
	usecase.ErrInvalidProjectName:  "Le nom du projet est requis",
	usecase.ErrInvalidAmount:       "Montant invalide",
	usecase.ErrInvalidDocument:     "Le document fourni doit être un PDF",
	usecase.ErrEmptySignature:      "La signature est vide",
	usecase.ErrInvalidSignature:    "La signature est illisible",
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrProjectNotFound):
		return pkg.NewDomainErrorSimple("PROJECT_NOT_FOUND", "Projet introuvable", http.StatusNotFound)
	case errors.Is(err, usecase.ErrDepositNotFound):
		return pkg.NewDomainErrorSimple("DEPOSIT_NOT_FOUND", "Aucun acompte pour ce devis", http.StatusNotFound)
	case errors.Is(err, usecase.ErrNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Devis introuvable", http.StatusNotFound)
	case errors.Is(err, usecase.ErrConflict):
		return pkg.NewDomainErrorSimple("QUOTE_ALREADY_SIGNED", "Un devis signé existe déjà pour ce projet", http.StatusConflict)
	case errors.Is(err, usecase.ErrValidation):
		for target, msg := range validationMessages {
			if errors.Is(err, target) {
				return pkg.NewDomainErrorSimple("INVALID_REQUEST", msg, http.StatusBadRequest)
			}
		}
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Requête invalide", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidState):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_PENDING", "Ce devis n'est plus en attente de signature", http.StatusConflict)
	case errors.Is(err, usecase.ErrRenderFailure):
		return pkg.NewDomainError("DOCUMENT_FAILURE", "La génération du document a échoué", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrDependencyFailure):
		return pkg.NewDomainError("DEPENDENCY_FAILURE", "Un service externe est indisponible, réessayez plus tard", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Accès refusé", http.StatusForbidden)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Une erreur interne est survenue", err, http.StatusInternalServerError)
	}
}
