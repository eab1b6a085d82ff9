package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/hekit/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestValidateRecord_Defaults(t *testing.T) {
	attrs, skip, err := domain.ValidateRecord("seal", domain.RawInstance{"name": "v1"})
	require.NoError(t, err)

	assert.False(t, skip)
	assert.Equal(t, "v1", attrs[domain.AttrName].Scalar())
	assert.Equal(t, "fetch", attrs[domain.AttrInitFetchDir].Scalar())
	assert.Equal(t, "build", attrs[domain.AttrInitBuildDir].Scalar())
	assert.Equal(t, "build", attrs[domain.AttrInitInstallDir].Scalar())
	for _, key := range []string{"pre_fetch", "fetch", "post_fetch", "pre_build", "build", "post_build", "pre_install", "install", "post_install"} {
		v, ok := attrs[key]
		assert.True(t, ok, "missing default for %s", key)
		assert.Empty(t, v.Scalar())
	}
	_, hasSkip := attrs[domain.AttrSkip]
	assert.False(t, hasSkip)
}

func TestValidateRecord_FreeForm(t *testing.T) {
	attrs, skip, err := domain.ValidateRecord("seal", domain.RawInstance{
		"name":    "v1",
		"skip":    true,
		"jobs":    int64(4),
		"flags":   []any{"-O2", "-g"},
		"version": "3.6",
	})
	require.NoError(t, err)

	assert.True(t, skip)
	assert.Equal(t, "4", attrs["jobs"].Scalar())
	assert.True(t, attrs["flags"].IsList())
	assert.Equal(t, []string{"-O2", "-g"}, attrs["flags"].Items())
	assert.Equal(t, "3.6", attrs["version"].Scalar())
}

func TestValidateRecord_Errors(t *testing.T) {
	tests := []struct {
		name  string
		raw   domain.RawInstance
		field string
		msg   string
	}{
		{"missing name", domain.RawInstance{"build": "make"}, "name", "missing required field"},
		{"name not string", domain.RawInstance{"name": int64(3)}, "name", "field must be a string"},
		{"empty name", domain.RawInstance{"name": ""}, "name", "field must not be empty"},
		{"skip not bool", domain.RawInstance{"name": "a", "skip": "yes"}, "skip", "field must be a boolean"},
		{"hook not string", domain.RawInstance{"name": "a", "build": []any{"make"}}, "build", "field must be a string"},
		{"nested table", domain.RawInstance{"name": "a", "opts": map[string]any{"x": "y"}}, "opts", "field must be a string or a list of strings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := domain.ValidateRecord("seal", tt.raw)
			require.Error(t, err)
			require.ErrorContains(t, err, domain.ErrInvalidSpec.Error())
			require.ErrorContains(t, err, tt.msg)

			zErr, ok := err.(*zerr.Error)
			require.True(t, ok, "expected *zerr.Error, got %T", err)
			meta := zErr.Metadata()
			assert.Equal(t, "seal", meta["component"])
			assert.Equal(t, tt.field, meta["field"])
		})
	}
}

func TestInstanceSpec_Accessors(t *testing.T) {
	spec := domain.NewInstanceSpec("/repo", "seal", false, domain.Attributes{
		"name":           domain.String("v1"),
		"build":          domain.String("make"),
		"init_build_dir": domain.String("/repo/seal/v1/build"),
	})

	assert.Equal(t, "seal", spec.Component())
	assert.Equal(t, "v1", spec.Name())
	assert.Equal(t, "/repo/seal/v1", spec.Ref().Dir())
	assert.Equal(t, "seal/v1", spec.String())
	assert.Equal(t, "make", spec.Hook(domain.StageBuild, domain.PhaseMain))
	assert.Empty(t, spec.Hook(domain.StageBuild, domain.PhasePre))
	assert.Equal(t, "/repo/seal/v1/build", spec.InitDir(domain.StageBuild))

	rec := spec.Record()
	assert.Equal(t, false, rec["skip"])
	assert.Equal(t, "make", rec["build"])
}

func TestInstanceSpec_Diff(t *testing.T) {
	a := domain.NewInstanceSpec("/r", "c", false, domain.Attributes{
		"name":  domain.String("n"),
		"build": domain.String("make"),
		"libs":  domain.List("a", "b"),
	})
	same := domain.NewInstanceSpec("/r", "c", false, domain.Attributes{
		"name":  domain.String("n"),
		"build": domain.String("make"),
		"libs":  domain.List("a", "b"),
	})
	other := domain.NewInstanceSpec("/r", "c", true, domain.Attributes{
		"name":  domain.String("n"),
		"build": domain.String("ninja"),
		"libs":  domain.List("a"),
		"extra": domain.String("x"),
	})

	assert.Empty(t, a.Diff(same))
	assert.Equal(t, []string{"build", "extra", "libs", "skip"}, a.Diff(other))
}

func TestIsPathAttribute(t *testing.T) {
	assert.True(t, domain.IsPathAttribute("init_fetch_dir"))
	assert.True(t, domain.IsPathAttribute("export_install_dir"))
	assert.False(t, domain.IsPathAttribute("build"))
	assert.False(t, domain.IsPathAttribute("name"))
}

func TestValue_String_vs_List(t *testing.T) {
	assert.False(t, domain.String("x").Equal(domain.List("x")))
	assert.Equal(t, []string{}, domain.List().Items())
	assert.Nil(t, domain.String("x").Items())

	upper, err := domain.List("a", "b").Map(func(s string) (string, error) { return s + "!", nil })
	require.NoError(t, err)
	assert.Equal(t, []string{"a!", "b!"}, upper.Items())
}
