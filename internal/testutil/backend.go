// Package testutil provides an in-process fake of the ordem-servico API for
// client tests. It keeps orders in memory and hands out ids the way the real
// backend does.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"tecelar/internal/dto"
)

// PDFStub is the payload the fake returns for PDF endpoints.
var PDFStub = []byte("%PDF-1.4 fake\n")

type FakeBackend struct {
	Server *httptest.Server

	mu       sync.Mutex
	nextID   int64
	orders   map[int64]dto.OrdemServico
	images   map[string]bool
	requests int
}

func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	f := &FakeBackend{
		nextID: 1,
		orders: make(map[int64]dto.OrdemServico),
		images: make(map[string]bool),
	}

	r := chi.NewRouter()
	r.Use(f.countRequests)
	r.Route("/api", func(r chi.Router) {
		r.Route("/ordens", func(r chi.Router) {
			r.Post("/", f.createOrder)
			r.Get("/", f.listOrders)
			r.Get("/buscar", f.searchOrders)
			r.Post("/pdf/preview", f.pdfPreview)
			r.Get("/{id}", f.getOrder)
			r.Put("/{id}", f.updateOrder)
			r.Delete("/{id}", f.deleteOrder)
			r.Post("/{id}/pdf", f.pdf)
		})
		r.Route("/imagens", func(r chi.Router) {
			r.Post("/upload", f.uploadImage)
			r.Get("/existe/{filename}", f.imageExists)
			r.Delete("/{filename}", f.deleteImage)
		})
	})

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the base address to point a client at.
func (f *FakeBackend) URL() string { return f.Server.URL }

// Requests reports how many requests reached the fake, letting tests assert
// that a gated action never touched the network.
func (f *FakeBackend) Requests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

// Order returns a stored order by id.
func (f *FakeBackend) Order(id int64) (dto.OrdemServico, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	return o, ok
}

func (f *FakeBackend) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests++
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (f *FakeBackend) createOrder(w http.ResponseWriter, r *http.Request) {
	var ordem dto.OrdemServico
	if err := json.NewDecoder(r.Body).Decode(&ordem); err != nil {
		writeErro(w, http.StatusBadRequest, "json inválido")
		return
	}

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	ordem.ID = &id
	for i := range ordem.Itens {
		itemID := f.nextID
		f.nextID++
		ordem.Itens[i].ID = &itemID
	}
	f.orders[id] = ordem
	f.mu.Unlock()

	writeJSON(w, http.StatusCreated, ordem)
}

func (f *FakeBackend) listOrders(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	out := make([]dto.OrdemServico, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, o)
	}
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeBackend) searchOrders(w http.ResponseWriter, r *http.Request) {
	cliente := strings.ToLower(r.URL.Query().Get("cliente"))
	f.mu.Lock()
	out := make([]dto.OrdemServico, 0)
	for _, o := range f.orders {
		if strings.Contains(strings.ToLower(o.Cliente), cliente) {
			out = append(out, o)
		}
	}
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeBackend) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := f.orderID(w, r)
	if !ok {
		return
	}
	f.mu.Lock()
	ordem, found := f.orders[id]
	f.mu.Unlock()
	if !found {
		writeErro(w, http.StatusNotFound, fmt.Sprintf("Ordem não encontrada: %d", id))
		return
	}
	writeJSON(w, http.StatusOK, ordem)
}

func (f *FakeBackend) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := f.orderID(w, r)
	if !ok {
		return
	}

	var ordem dto.OrdemServico
	if err := json.NewDecoder(r.Body).Decode(&ordem); err != nil {
		writeErro(w, http.StatusBadRequest, "json inválido")
		return
	}

	f.mu.Lock()
	_, found := f.orders[id]
	if found {
		ordem.ID = &id
		for i := range ordem.Itens {
			if ordem.Itens[i].ID == nil {
				itemID := f.nextID
				f.nextID++
				ordem.Itens[i].ID = &itemID
			}
		}
		f.orders[id] = ordem
	}
	f.mu.Unlock()

	if !found {
		writeErro(w, http.StatusNotFound, fmt.Sprintf("Ordem não encontrada: %d", id))
		return
	}
	writeJSON(w, http.StatusOK, ordem)
}

func (f *FakeBackend) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := f.orderID(w, r)
	if !ok {
		return
	}
	f.mu.Lock()
	_, found := f.orders[id]
	delete(f.orders, id)
	f.mu.Unlock()
	if !found {
		writeErro(w, http.StatusNotFound, fmt.Sprintf("Ordem não encontrada: %d", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeBackend) pdf(w http.ResponseWriter, r *http.Request) {
	id, ok := f.orderID(w, r)
	if !ok {
		return
	}
	f.mu.Lock()
	_, found := f.orders[id]
	f.mu.Unlock()
	if !found {
		writeErro(w, http.StatusNotFound, fmt.Sprintf("Ordem não encontrada: %d", id))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Write(PDFStub)
}

func (f *FakeBackend) pdfPreview(w http.ResponseWriter, r *http.Request) {
	var ordem dto.OrdemServico
	if err := json.NewDecoder(r.Body).Decode(&ordem); err != nil {
		writeErro(w, http.StatusBadRequest, "json inválido")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Write(PDFStub)
}

func (f *FakeBackend) uploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		writeErro(w, http.StatusBadRequest, "multipart inválido")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeErro(w, http.StatusBadRequest, "arquivo ausente")
		return
	}
	defer file.Close()

	caminho := "stored_" + header.Filename
	f.mu.Lock()
	f.images[caminho] = true
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, dto.UploadResponse{
		CaminhoImagem: caminho,
		NomeOriginal:  header.Filename,
		Mensagem:      "Upload realizado com sucesso",
	})
}

func (f *FakeBackend) imageExists(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	f.mu.Lock()
	exists := f.images[filename]
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, dto.ExisteResponse{Existe: exists})
}

func (f *FakeBackend) deleteImage(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	f.mu.Lock()
	delete(f.images, filename)
	f.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeBackend) orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeErro(w, http.StatusBadRequest, "id inválido")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeErro(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.ErroResponse{Erro: msg})
}
