// Package dashboard builds the role-dependent home pages. The menu is data
// driven: one table maps entries to the roles that may see them, and the
// landing redirect after login comes from the same role tag.
package dashboard

import "github.com/odontoweb/portal/internal/platform/roles"

// MenuEntry is one navigation card on a dashboard.
type MenuEntry struct {
	Label string `json:"label"`
	Path  string `json:"path"`

	roles []roles.RoleTag
}

func allowed(entry MenuEntry, tag roles.RoleTag) bool {
	for _, r := range entry.roles {
		if r == tag {
			return true
		}
	}
	return false
}

var menu = []MenuEntry{
	{Label: "Meus Agendamentos", Path: "/agendamentos",
		roles: []roles.RoleTag{roles.Patient, roles.Dentist, roles.Receptionist, roles.Admin}},
	{Label: "Novo Agendamento", Path: "/agendamentos/novo",
		roles: []roles.RoleTag{roles.Receptionist, roles.Dentist, roles.Admin}},
	{Label: "Histórico de Consultas", Path: "/historico-consultas",
		roles: []roles.RoleTag{roles.Patient, roles.Dentist, roles.Admin}},
	{Label: "Gerenciar Pacientes", Path: "/pacientes",
		roles: []roles.RoleTag{roles.Receptionist, roles.Admin}},
	{Label: "Gerenciar Serviços", Path: "/servicos",
		roles: []roles.RoleTag{roles.Receptionist, roles.Admin}},
	{Label: "Meu Perfil", Path: "/perfil",
		roles: []roles.RoleTag{roles.Patient, roles.Dentist, roles.Receptionist, roles.Admin}},
}

// MenuFor returns the entries the role may see, in display order. An
// unresolved role sees nothing.
func MenuFor(tag roles.RoleTag) []MenuEntry {
	var out []MenuEntry
	for _, entry := range menu {
		if allowed(entry, tag) {
			out = append(out, entry)
		}
	}
	return out
}

// LandingPath is where a fresh login is sent. Unrecognized roles land on the
// dentist dashboard, matching the backend's historical default.
func LandingPath(tag roles.RoleTag) string {
	switch tag {
	case roles.Patient:
		return "/dashboard-paciente"
	case roles.Receptionist:
		return "/dashboard-recepcionista"
	case roles.Unknown:
		return "/login"
	default:
		return "/dashboard-dentista"
	}
}
