package httpapi

import (
	"net/http"
)

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	list, err := h.Sessions.FindAll(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	out := make([]SessionDto, 0, len(list))
	for _, s := range list {
		out = append(out, newSessionDto(s))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	s, err := h.Sessions.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionDto(s))
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var dto SessionDto
	if err := decodeJSON(w, r, &dto); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := dto.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	s, err := h.Sessions.Create(r.Context(), dto.model())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionDto(s))
}

func (h *Handler) updateSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var dto SessionDto
	if err := decodeJSON(w, r, &dto); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := dto.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	s, err := h.Sessions.Update(r.Context(), id, dto.model())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionDto(s))
}

func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.Sessions.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeOK(w)
}

// participationIDs parses {id} and {userId}.
func participationIDs(r *http.Request) (sessionID, userID int64, err error) {
	if sessionID, err = pathID(r, "id"); err != nil {
		return 0, 0, err
	}
	if userID, err = pathID(r, "userId"); err != nil {
		return 0, 0, err
	}
	return sessionID, userID, nil
}

func (h *Handler) participate(w http.ResponseWriter, r *http.Request) {
	sessionID, userID, err := participationIDs(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.Ledger.Participate(r.Context(), sessionID, userID); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeOK(w)
}

func (h *Handler) noLongerParticipate(w http.ResponseWriter, r *http.Request) {
	sessionID, userID, err := participationIDs(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.Ledger.NoLongerParticipate(r.Context(), sessionID, userID); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeOK(w)
}
