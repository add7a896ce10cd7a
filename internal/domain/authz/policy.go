// Package authz implementa la política de autorización como función pura:
// dada la identidad del llamador y la acción sobre un recurso, decide
// permitir o negar con una razón. Sin I/O.
//
// Las reglas viven en una tabla (recurso × acción → regla) para que agregar
// un rol o un recurso no obligue a auditar cada handler: todo punto de
// mutación consulta Decide exactamente una vez antes de actuar.
package authz

import "github.com/jortega/ventas-api/internal/domain/entity"

// Resource identifica el tipo de recurso sobre el que se actúa.
type Resource string

const (
	ResourceUser     Resource = "usuario"
	ResourceCustomer Resource = "cliente"
	ResourceCategory Resource = "categoria"
	ResourceProduct  Resource = "producto"
	ResourceSale     Resource = "venta"
	ResourceSaleItem Resource = "venta_item"
)

// Action identifica la operación.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionList   Action = "list"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Reason clasifica una negación.
type Reason string

const (
	ReasonUnauthenticated      Reason = "Unauthenticated"
	ReasonForbiddenRole        Reason = "ForbiddenRole"
	ReasonForbiddenFieldChange Reason = "ForbiddenFieldChange"
	ReasonCannotDeleteSelf     Reason = "CannotDeleteSelf"
)

// Detail devuelve el mensaje legible para la respuesta HTTP.
func (r Reason) Detail() string {
	switch r {
	case ReasonUnauthenticated:
		return "autenticación requerida"
	case ReasonForbiddenRole:
		return "su rol no permite esta operación"
	case ReasonForbiddenFieldChange:
		return "solo un administrador puede cambiar rol o zona de acceso"
	case ReasonCannotDeleteSelf:
		return "no puede eliminar su propia cuenta"
	}
	return "acceso denegado"
}

// DeniedError es el error que cargan los casos de uso cuando la política
// niega una operación; el handler lo traduce a 401/403 según la razón.
type DeniedError struct {
	Reason Reason
}

func (e *DeniedError) Error() string { return e.Reason.Detail() }

// Caller es la identidad del llamador, extraída del token y pasada
// explícitamente (nunca estado global por petición).
type Caller struct {
	ID          string
	Rol         string
	Autenticado bool
}

// Anonymous es el llamador sin autenticar.
var Anonymous = Caller{}

// Request describe la operación a autorizar. TargetUserID solo aplica a
// operaciones sobre usuarios; CambiaCamposProtegidos indica que el patch
// toca rol o zona_acceso.
type Request struct {
	Resource               Resource
	Action                 Action
	TargetUserID           string
	CambiaCamposProtegidos bool
}

// Decision resultado de la evaluación.
type Decision struct {
	Allowed bool
	Reason  Reason // vacía cuando Allowed
}

// Err devuelve nil si la decisión permite, o un *DeniedError con la razón.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &DeniedError{Reason: d.Reason}
}

func allow() Decision             { return Decision{Allowed: true} }
func deny(reason Reason) Decision { return Decision{Reason: reason} }

// rule describe quién puede ejecutar una combinación recurso/acción.
type rule struct {
	open            bool     // permitido incluso sin autenticación (modo relajado)
	roles           []string // roles permitidos; vacío = cualquier autenticado
	allowSelf       bool     // el propio usuario puede, aunque su rol no esté en roles
	denySelf        bool     // se niega si el objetivo es el propio llamador (prevalece)
	protectedFields bool     // en la vía allowSelf, rechazar cambios de rol/zona
}

type ruleKey struct {
	resource Resource
	action   Action
}

// rules es la única fuente de verdad de la política.
var rules = map[ruleKey]rule{
	// Usuarios: lectura/edición propia siempre (sin tocar rol/zona); el resto admin.
	{ResourceUser, ActionRead}:   {roles: []string{entity.RoleAdmin}, allowSelf: true},
	{ResourceUser, ActionUpdate}: {roles: []string{entity.RoleAdmin}, allowSelf: true, protectedFields: true},
	{ResourceUser, ActionDelete}: {roles: []string{entity.RoleAdmin}, denySelf: true},
	{ResourceUser, ActionCreate}: {roles: []string{entity.RoleAdmin}}, // aprovisionamiento
	{ResourceUser, ActionList}:   {},                                  // alcance vía ListUsersScope

	// Clientes: cualquier autenticado.
	{ResourceCustomer, ActionCreate}: {},
	{ResourceCustomer, ActionRead}:   {},
	{ResourceCustomer, ActionList}:   {},
	{ResourceCustomer, ActionUpdate}: {},
	{ResourceCustomer, ActionDelete}: {},

	// Catálogo: lectura abierta (modo relajado), mutación solo admin.
	{ResourceCategory, ActionRead}:   {open: true},
	{ResourceCategory, ActionList}:   {open: true},
	{ResourceCategory, ActionCreate}: {roles: []string{entity.RoleAdmin}},
	{ResourceCategory, ActionUpdate}: {roles: []string{entity.RoleAdmin}},
	{ResourceCategory, ActionDelete}: {roles: []string{entity.RoleAdmin}},

	{ResourceProduct, ActionRead}:   {open: true},
	{ResourceProduct, ActionList}:   {open: true},
	{ResourceProduct, ActionCreate}: {roles: []string{entity.RoleAdmin}},
	{ResourceProduct, ActionUpdate}: {roles: []string{entity.RoleAdmin}},
	{ResourceProduct, ActionDelete}: {roles: []string{entity.RoleAdmin}},

	// Ventas: abiertas en el modo relajado actual, salvo eliminación (admin).
	{ResourceSale, ActionCreate}: {open: true},
	{ResourceSale, ActionRead}:   {open: true},
	{ResourceSale, ActionList}:   {open: true},
	{ResourceSale, ActionUpdate}: {open: true},
	{ResourceSale, ActionDelete}: {roles: []string{entity.RoleAdmin}},

	{ResourceSaleItem, ActionCreate}: {open: true},
	{ResourceSaleItem, ActionRead}:   {open: true},
	{ResourceSaleItem, ActionList}:   {open: true},
	{ResourceSaleItem, ActionUpdate}: {open: true},
	{ResourceSaleItem, ActionDelete}: {open: true},
}

// Decide evalúa la política. Orden de precedencia:
//  1. recurso/acción desconocidos → negar (cerrado por defecto)
//  2. regla abierta → permitir sin mirar identidad
//  3. sin autenticar → Unauthenticated
//  4. auto-eliminación → CannotDeleteSelf (incluso admin)
//  5. acceso propio → permitir, salvo cambio de campos protegidos por no-admin
//  6. rol en la regla → permitir; si no → ForbiddenRole
func Decide(caller Caller, req Request) Decision {
	r, ok := rules[ruleKey{req.Resource, req.Action}]
	if !ok {
		return deny(ReasonForbiddenRole)
	}
	if r.open {
		return allow()
	}
	if !caller.Autenticado {
		return deny(ReasonUnauthenticated)
	}
	self := req.TargetUserID != "" && req.TargetUserID == caller.ID
	if r.denySelf && self {
		return deny(ReasonCannotDeleteSelf)
	}
	if r.allowSelf && self {
		if r.protectedFields && req.CambiaCamposProtegidos && caller.Rol != entity.RoleAdmin {
			return deny(ReasonForbiddenFieldChange)
		}
		return allow()
	}
	if len(r.roles) == 0 {
		return allow()
	}
	for _, role := range r.roles {
		if caller.Rol == role {
			return allow()
		}
	}
	return deny(ReasonForbiddenRole)
}

// Scope alcance del listado de usuarios.
type Scope int

const (
	ScopeSelf Scope = iota // solo el registro propio
	ScopeAll               // todos los registros
)

// ListUsersScope devuelve el alcance del listado para el llamador:
// admin ve todo, cualquier otro ve exactamente su propio registro.
func ListUsersScope(caller Caller) Scope {
	if caller.Rol == entity.RoleAdmin {
		return ScopeAll
	}
	return ScopeSelf
}
