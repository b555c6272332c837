package httpapi

import "net/http"

func (h *Handler) listTeachers(w http.ResponseWriter, r *http.Request) {
	list, err := h.Teachers.FindAll(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	out := make([]TeacherDto, 0, len(list))
	for _, t := range list {
		out = append(out, newTeacherDto(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	t, err := h.Teachers.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, newTeacherDto(t))
}
