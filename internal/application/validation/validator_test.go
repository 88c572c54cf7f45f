package validation_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/acaclick-api/internal/application/dto"
	"github.com/jhoicas/acaclick-api/internal/application/validation"
	"github.com/jhoicas/acaclick-api/internal/domain"
)

func strPtr(s string) *string { return &s }

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "se esperaba ValidationError, llegó %v", err)
	return ve.Fields
}

func validCreate() dto.CreateNegocioRequest {
	return dto.CreateNegocioRequest{
		BusinessName: "Cafe X",
		BusinessType: "restaurante",
		Email:        "a@b.com",
		Phone:        "555",
		Address:      "Main 1",
	}
}

func TestNormalizingValidator_CafeXAgregaHTTPS(t *testing.T) {
	req := validCreate()
	req.Website = strPtr("cafex.com")

	n, err := validation.NewNormalizingValidator().Prepare(&req)
	require.NoError(t, err)
	require.NotNil(t, n.SitioWeb)
	assert.Equal(t, "https://cafex.com", *n.SitioWeb)
	assert.Equal(t, "Cafe X", n.Nombre)
	assert.True(t, n.EstaActivo())
	assert.JSONEq(t, "{}", string(n.Personalizacion))
}

func TestNormalizingValidator_SitioWeb(t *testing.T) {
	cases := []struct {
		in   *string
		want *string
	}{
		{nil, nil},
		{strPtr("   "), nil},
		{strPtr("http://a.com"), strPtr("http://a.com")},
		{strPtr(" HTTPS://a.com "), strPtr("HTTPS://a.com")},
		{strPtr("www.a.com/x"), strPtr("https://www.a.com/x")},
	}
	for _, c := range cases {
		req := validCreate()
		req.Website = c.in
		n, err := validation.NewNormalizingValidator().Prepare(&req)
		require.NoError(t, err)
		assert.Equal(t, c.want, n.SitioWeb)
	}
}

func TestNormalizingValidator_FailFastPrimerCampo(t *testing.T) {
	req := dto.CreateNegocioRequest{Email: "malo"}
	_, err := validation.NewNormalizingValidator().Prepare(&req)

	f := fieldsOf(t, err)
	assert.Len(t, f, 1)
	assert.Equal(t, validation.MsgRequired, f["businessName"])
}

func TestNormalizingValidator_NombreEnBlancoEsRequerido(t *testing.T) {
	req := validCreate()
	req.BusinessName = "   "
	_, err := validation.NewNormalizingValidator().Prepare(&req)
	assert.Equal(t, map[string]string{"businessName": validation.MsgRequired}, fieldsOf(t, err))
}

func TestNormalizingValidator_TipoConAcentos(t *testing.T) {
	req := validCreate()
	req.BusinessType = "Hostelería"
	n, err := validation.NewNormalizingValidator().Prepare(&req)
	require.NoError(t, err)
	assert.Equal(t, "hosteleria", n.Tipo)
}

func TestNormalizingValidator_TipoInvalido(t *testing.T) {
	req := validCreate()
	req.BusinessType = "banco"
	_, err := validation.NewNormalizingValidator().Prepare(&req)
	assert.Equal(t, `"banco" no es una elección válida.`, fieldsOf(t, err)["businessType"])
}

func TestNormalizingValidator_Horarios(t *testing.T) {
	req := validCreate()
	req.OpenTime = strPtr("08:30")
	req.CloseTime = strPtr("")
	n, err := validation.NewNormalizingValidator().Prepare(&req)
	require.NoError(t, err)
	assert.Equal(t, "08:30:00", *n.HorarioApertura)
	assert.Nil(t, n.HorarioCierre)

	req = validCreate()
	req.OpenTime = strPtr("8h")
	_, err = validation.NewNormalizingValidator().Prepare(&req)
	assert.Contains(t, fieldsOf(t, err)["openTime"], "Formato de hora incorrecto")
}

func TestNormalizingValidator_LogoYOpcionalesEnBlanco(t *testing.T) {
	req := validCreate()
	req.Logo = strPtr("  ")
	req.Facebook = strPtr("")
	req.Description = strPtr(" buen café ")
	n, err := validation.NewNormalizingValidator().Prepare(&req)
	require.NoError(t, err)
	assert.Nil(t, n.LogoURL)
	assert.Nil(t, n.Facebook)
	assert.Equal(t, "buen café", *n.Descripcion)
}

func TestParseLocation(t *testing.T) {
	lat, lng := validation.ParseLocation(json.RawMessage(`{"lat":19.432608,"lng":-99.133209}`))
	require.NotNil(t, lat)
	require.NotNil(t, lng)
	assert.Equal(t, "19.43260800", lat.StringFixed(8))
	assert.Equal(t, "-99.13320900", lng.StringFixed(8))

	lat, _ = validation.ParseLocation(json.RawMessage(`{"lat":"19.1234567891","lng":"-99"}`))
	require.NotNil(t, lat)
	assert.Equal(t, "19.12345679", lat.StringFixed(8))

	for _, raw := range []string{``, `null`, `"x"`, `[1,2]`, `{}`, `{"lat":"abc","lng":true}`} {
		lat, lng := validation.ParseLocation(json.RawMessage(raw))
		assert.Nil(t, lat, raw)
		assert.Nil(t, lng, raw)
	}
}

func TestParseLocation_CoordenadasIndependientes(t *testing.T) {
	cases := []struct {
		raw      string
		lat, lng string // "" = ausente
	}{
		{`{"lat":19.4326}`, "19.43260000", ""},
		{`{"lng":-99.1332}`, "", "-99.13320000"},
		{`{"lat":19.4326,"lng":"abc"}`, "19.43260000", ""},
		{`{"lat":"abc","lng":1}`, "", "1.00000000"},
		{`{"lat":true,"lng":1}`, "", "1.00000000"},
		{`{"lat":500,"lng":1}`, "", "1.00000000"},
		{`{"lat":1,"lng":500}`, "1.00000000", "500.00000000"},
		{`{"lat":1,"lng":5000}`, "1.00000000", ""},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			lat, lng := validation.ParseLocation(json.RawMessage(tc.raw))
			if tc.lat == "" {
				assert.Nil(t, lat)
			} else if assert.NotNil(t, lat) {
				assert.Equal(t, tc.lat, lat.StringFixed(8))
			}
			if tc.lng == "" {
				assert.Nil(t, lng)
			} else if assert.NotNil(t, lng) {
				assert.Equal(t, tc.lng, lng.StringFixed(8))
			}
		})
	}
}

func TestFitsNumeric(t *testing.T) {
	assert.True(t, validation.FitsNumeric(decimal.RequireFromString("89.12345678"), 10, 8))
	assert.True(t, validation.FitsNumeric(decimal.RequireFromString("-0.5"), 10, 8))
	assert.False(t, validation.FitsNumeric(decimal.RequireFromString("100"), 10, 8))
	assert.False(t, validation.FitsNumeric(decimal.RequireFromString("1.123456789"), 10, 8))
	assert.True(t, validation.FitsNumeric(decimal.RequireFromString("-179.5"), 11, 8))
}

func TestAggregatingValidator_Registro(t *testing.T) {
	req := dto.RegisterRequest{
		Username: "con espacio",
		Correo:   "no-es-correo",
		Password: "123",
	}
	f := fieldsOf(t, validation.AggregatingValidator{}.Validate(&req))

	assert.Equal(t, "Introduzca un nombre de usuario válido (letras, números y @/./+/-/_).", f["username"])
	assert.Equal(t, "Introduzca una dirección de correo electrónico válida.", f["correo"])
	assert.Equal(t, validation.MsgRequired, f["nombre"])
	assert.Equal(t, validation.MsgRequired, f["apellido_paterno"])
	assert.Equal(t, "Asegúrese de que este campo tenga al menos 6 caracteres.", f["password"])
	assert.Equal(t, "El rol es obligatorio.", f["id_rol"])
	assert.NotContains(t, f, "password2")
}

func TestAggregatingValidator_FechaNacimiento(t *testing.T) {
	rol := int64(2)
	req := dto.RegisterRequest{
		Username: "ana", Correo: "ana@x.com", Nombre: "Ana", ApellidoPaterno: "Ruiz",
		Password: "secreto1", IDRol: &rol, FechaNacimiento: strPtr("31/12/1990"),
	}
	f := fieldsOf(t, validation.AggregatingValidator{}.Validate(&req))
	assert.Equal(t, map[string]string{"fecha_nacimiento": "Formato de fecha incorrecto. Use uno de los siguientes formatos: YYYY-MM-DD."}, f)

	req.FechaNacimiento = strPtr("1990-12-31")
	assert.NoError(t, validation.AggregatingValidator{}.Validate(&req))
}

func TestAggregatingValidator_UpdateSoloCamposPresentes(t *testing.T) {
	lat := decimal.RequireFromString("123.5")
	req := dto.UpdateNegocioRequest{
		Correo:  strPtr("malo"),
		Latitud: &lat,
	}
	f := fieldsOf(t, validation.AggregatingValidator{}.Validate(&req))
	assert.Len(t, f, 2)
	assert.Contains(t, f, "correo")
	assert.Contains(t, f, "latitud")

	assert.NoError(t, validation.AggregatingValidator{}.Validate(&dto.UpdateNegocioRequest{}))
}

func TestParseHora(t *testing.T) {
	for in, want := range map[string]string{"9:05": "09:05:00", "23:59:59": "23:59:59", "07:00:00.5": "07:00:00"} {
		got, ok := validation.ParseHora(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}
	_, ok := validation.ParseHora("25:00")
	assert.False(t, ok)
}
