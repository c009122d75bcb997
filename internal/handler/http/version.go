// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-fullstack-auth/internal/utils"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	info := h.buildInfo
	info.Version = h.services.AppInfoService.GetAppVersion(r.Context())

	utils.WriteJSON(w, info, http.StatusOK)
}

// healthCheck answers true while the store is reachable and 503 otherwise.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.services.AppInfoService.HealthCheck(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, true, http.StatusOK)
}
