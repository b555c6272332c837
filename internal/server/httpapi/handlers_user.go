package httpapi

import "net/http"

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	u, err := h.Users.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserDto(u))
}

// deleteUser removes an account. Only its owner or an admin may do so.
func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	p, _ := PrincipalFromContext(r.Context())
	if err := h.Users.Delete(r.Context(), p, id); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	h.log.Info(r.Context(), "user deleted", "user_id", id, "by", p.ID)
	writeOK(w)
}
