package http

import (
	"io"
	"net/http"

	"rentalops-backend/internal/storage"

	"github.com/gorilla/mux"
)

// SignatureHandler stores and serves proof-of-delivery signature blobs. The
// driver app uploads the signature first, then completes the stop with the
// returned reference.
type SignatureHandler struct {
	signatures storage.SignatureStore
}

const maxSignatureBytes = 1 << 20 // 1 MiB

func (h *SignatureHandler) Upload(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxSignatureBytes)
	ref, err := h.signatures.Save(r.Context(), body)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to store signature"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"signature_ref": ref})
}

func (h *SignatureHandler) Download(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["ref"]
	blob, err := h.signatures.Open(r.Context(), ref)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "signature not found"})
		return
	}
	defer blob.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	io.Copy(w, blob)
}
