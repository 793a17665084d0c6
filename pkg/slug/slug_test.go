package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/minegocio/pkg/slug"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de Make: el slug es la identidad pública del negocio (subdominio),
// así que el algoritmo tiene que ser determinista y estable.
// ──────────────────────────────────────────────────────────────────────────────

func TestMake_CasosBasicos(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"minúsculas y guion", "Gupta Medical", "gupta-medical"},
		{"espacios múltiples", "  Panadería   La  Espiga  ", "panaderia-la-espiga"},
		{"acentos y eñes", "Café Bogotá Ñandú", "cafe-bogota-nandu"},
		{"símbolos descartados", "My Shop 2.0!", "my-shop-20"},
		{"guiones repetidos", "a --- b", "a-b"},
		{"guiones en extremos", "--hola--", "hola"},
		{"números", "Ferretería 24/7", "ferreteria-247"},
		{"entrada vacía", "", ""},
		{"solo basura", "!!! ??? ***", ""},
		{"ya normalizado", "gupta-medical-2", "gupta-medical-2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, slug.Make(tc.in))
		})
	}
}

// La idempotencia es la propiedad que garantiza que proponer y verificar
// usan exactamente la misma forma canónica.
func TestMake_Idempotente(t *testing.T) {
	inputs := []string{
		"Gupta Medical", "Café   ---  Bogotá", "", "a", "¡Órale! Tacos & Más",
		"ya-es-un-slug", "  MAYÚSCULAS  ", "日本語テキスト mixto latino",
	}
	for _, in := range inputs {
		once := slug.Make(in)
		assert.Equal(t, once, slug.Make(once),
			"Make debe ser idempotente para %q", in)
	}
}

func TestMake_SoloCaracteresPermitidos(t *testing.T) {
	out := slug.Make("¿Dónde está el Pan? — Sucursal #3 (Centro)")
	for _, r := range out {
		ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		assert.True(t, ok, "carácter fuera de [a-z0-9-]: %q en %q", r, out)
	}
}

func TestIsValid_Limites(t *testing.T) {
	assert.False(t, slug.IsValid("ab"), "menos de 3 caracteres no es válido")
	assert.True(t, slug.IsValid("abc"))
	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	assert.False(t, slug.IsValid(string(long)), "más de 50 caracteres no es válido")
	assert.True(t, slug.IsValid(string(long[:50])))
}
