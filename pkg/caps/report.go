// pkg/caps/report.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package caps

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iancoleman/orderedmap"
)

// Report returns a JSON-encodable description of the registry whose keys
// are emitted in a stable, human-friendly order.
func (r *Registry) Report() *orderedmap.OrderedMap {
	m := orderedmap.New()
	m.Set("version", fmt.Sprintf("%d.%d", r.set.Version/10, r.set.Version%10))
	m.Set("glsl", r.set.GLSLVersion)
	m.Set("vendor", r.set.Vendor)
	m.Set("renderer", r.set.Renderer)

	caps := orderedmap.New()
	for c := range NumCaps {
		caps.Set(c.String(), r.set.Caps[c])
	}
	m.Set("caps", caps)

	limits := orderedmap.New()
	for l := range NumLimits {
		limits.Set(l.String(), r.set.Limits[l])
	}
	if r.set.Caps[TextureFilterAnisotropic] {
		limits.Set("MaxAnisotropy", r.set.MaxAnisotropy)
	}
	m.Set("limits", limits)

	m.Set("extensions", r.set.Extensions)
	return m
}

// WriteReport writes the indented JSON report to w.
func (r *Registry) WriteReport(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(r.Report())
}
