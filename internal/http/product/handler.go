package product

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/mda/internal/apperr"
	"github.com/MrJamesThe3rd/mda/internal/http/middleware"
	"github.com/MrJamesThe3rd/mda/internal/http/respond"
	"github.com/MrJamesThe3rd/mda/internal/importer"
	"github.com/MrJamesThe3rd/mda/internal/product"
)

const maxCatalogSize = 10 << 20

type Handler struct {
	svc       *product.Service
	importSvc *importer.Service
}

func NewHandler(svc *product.Service, importSvc *importer.Service) *Handler {
	return &Handler{svc: svc, importSvc: importSvc}
}

// Routes registers the public catalog reads and the logistique-only writes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Require(middleware.TierLogistique))

		r.Post("/", h.create)
		r.Post("/import", h.importCatalog)
		r.Patch("/{id}", h.update)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(products))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
}

type createProductRequest struct {
	Nom             string `json:"nom" validate:"required"`
	Description     string `json:"description"`
	PrixClient      int64  `json:"prixClient" validate:"gte=0"`
	PrixFournisseur int64  `json:"prixFournisseur" validate:"gte=0"`
	StockActuel     int    `json:"stockActuel"`
	Category        string `json:"category"`
	ImageURL        string `json:"imageUrl" validate:"omitempty,url"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.svc.Create(r.Context(), product.CreateParams{
		Nom:             req.Nom,
		Description:     req.Description,
		PrixClient:      req.PrixClient,
		PrixFournisseur: req.PrixFournisseur,
		StockActuel:     req.StockActuel,
		Category:        req.Category,
		ImageURL:        req.ImageURL,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(p))
}

type updateProductRequest struct {
	Nom             *string `json:"nom,omitempty" validate:"omitempty,min=1"`
	Description     *string `json:"description,omitempty"`
	PrixClient      *int64  `json:"prixClient,omitempty" validate:"omitempty,gte=0"`
	PrixFournisseur *int64  `json:"prixFournisseur,omitempty" validate:"omitempty,gte=0"`
	StockActuel     *int    `json:"stockActuel,omitempty"`
	Category        *string `json:"category,omitempty"`
	ImageURL        *string `json:"imageUrl,omitempty"`
	IsActive        *bool   `json:"isActive,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updateProductRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.svc.Update(r.Context(), id, product.UpdateParams{
		Nom:             req.Nom,
		Description:     req.Description,
		PrixClient:      req.PrixClient,
		PrixFournisseur: req.PrixFournisseur,
		StockActuel:     req.StockActuel,
		Category:        req.Category,
		ImageURL:        req.ImageURL,
		IsActive:        req.IsActive,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
}

type importResponse struct {
	Imported int               `json:"imported"`
	Products []productResponse `json:"products"`
}

func (h *Handler) importCatalog(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCatalogSize)

	if err := r.ParseMultipartForm(maxCatalogSize); err != nil {
		respond.Error(w, r, apperr.Invalidf("failed to parse form: %v", err))
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatCSV
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, r, apperr.Invalidf("file field is required"))
		return
	}
	defer file.Close()

	params, err := h.importSvc.Parse(format, file)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	products, err := h.svc.ImportBatch(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, importResponse{
		Imported: len(products),
		Products: toResponseList(products),
	})
}
