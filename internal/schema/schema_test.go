package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/colorterm/internal/color"
	"github.com/alexisbeaulieu97/colorterm/internal/palette"
	cterrors "github.com/alexisbeaulieu97/colorterm/pkg/errors"
)

func samplePalette() palette.Palette {
	return palette.Palette{
		color.Opaque(1, 1, 1),
		color.Opaque(250, 250, 250),
		{R: 10, G: 20, B: 30, A: 0.5},
		{R: 40, G: 50, B: 60, A: 0.75},
		color.Opaque(90, 90, 90),
	}
}

func TestRolesPerTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target Target
		want   []string
	}{
		{TargetIterm, []string{"background", "foreground", "link", "selected", "selectedText"}},
		{TargetWarp, []string{"background", "foreground", "accent"}},
		{TargetHyper, []string{"background", "foreground", "selected"}},
	}

	for _, tt := range tests {
		roles, err := Roles(tt.target)
		require.NoError(t, err)
		assert.Equal(t, tt.want, roles, "target %s", tt.target)
	}
}

func TestMappingUsesRoleIndices(t *testing.T) {
	t.Parallel()

	p := samplePalette()

	iterm, err := Mapping(TargetIterm, p)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"background":   "rgba(1, 1, 1, 1)",
		"foreground":   "rgba(250, 250, 250, 1)",
		"link":         "rgba(10, 20, 30, 0.5)",
		"selected":     "rgba(40, 50, 60, 0.75)",
		"selectedText": "rgba(90, 90, 90, 1)",
	}, iterm)

	hyper, err := Mapping(TargetHyper, p)
	require.NoError(t, err)
	assert.Len(t, hyper, 3)
	assert.Equal(t, "rgba(40, 50, 60, 0.75)", hyper["selected"])
	_, hasLink := hyper["link"]
	assert.False(t, hasLink)
}

func TestWarpAccentExample(t *testing.T) {
	t.Parallel()

	p := samplePalette()

	mapping, err := Mapping(TargetWarp, p)
	require.NoError(t, err)
	assert.Equal(t, "rgba(10, 20, 30, 0.5)", mapping["accent"])

	alpha, err := SelectedAlpha(TargetWarp, p)
	require.NoError(t, err)
	assert.Equal(t, 0.5, alpha)
}

func TestSelectedAlphaUsesSelectedRole(t *testing.T) {
	t.Parallel()

	for _, target := range []Target{TargetIterm, TargetHyper} {
		alpha, err := SelectedAlpha(target, samplePalette())
		require.NoError(t, err)
		assert.Equal(t, 0.75, alpha, "target %s", target)
	}
}

func TestUnsupportedSchemaIsAnError(t *testing.T) {
	t.Parallel()

	_, err := Mapping(Target("kitty"), samplePalette())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedSchema))

	var schemaErr *cterrors.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "kitty", schemaErr.Target)

	_, err = Roles(Target(""))
	assert.True(t, errors.Is(err, ErrUnsupportedSchema))

	_, err = SelectedAlpha(Target("kitty"), samplePalette())
	assert.True(t, errors.Is(err, ErrUnsupportedSchema))

	_, _, err = UpdateColor(Target("kitty"), samplePalette(), "background", "#fff")
	assert.True(t, errors.Is(err, ErrUnsupportedSchema))
}

func TestUpdateColorReplacesMappedSlot(t *testing.T) {
	t.Parallel()

	for _, target := range Targets() {
		updated, changed, err := UpdateColor(target, samplePalette(), "background", "#112233")
		require.NoError(t, err)
		assert.True(t, changed)

		mapping, err := Mapping(target, updated)
		require.NoError(t, err)
		assert.Equal(t, "rgba(17, 34, 51, 1)", mapping["background"], "target %s", target)

		original := samplePalette()
		for i := 1; i < palette.Size; i++ {
			assert.Equal(t, original[i], updated[i], "target %s slot %d", target, i)
		}
	}
}

func TestUpdateColorResolvesKeyWithinActiveSchema(t *testing.T) {
	t.Parallel()

	p := samplePalette()

	// "selected" exists for hyper (slot 3) but not for warp.
	hyper, changed, err := UpdateColor(TargetHyper, p, "selected", "#ffffff")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, color.Opaque(255, 255, 255), hyper[3])

	warp, changed, err := UpdateColor(TargetWarp, p, "selected", "#ffffff")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, p, warp)

	// "accent" is warp's slot 2.
	warp, changed, err = UpdateColor(TargetWarp, p, "accent", "rgba(1, 2, 3, 0.25)")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, color.Color{R: 1, G: 2, B: 3, A: 0.25}, warp[2])
}

func TestUpdateColorUnknownKeyIsNoOp(t *testing.T) {
	t.Parallel()

	p := samplePalette()
	updated, changed, err := UpdateColor(TargetIterm, p, "nonexistent", "#123456")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, p, updated)
}

func TestUpdateColorRejectsBadInputWithoutMutation(t *testing.T) {
	t.Parallel()

	p := samplePalette()
	updated, changed, err := UpdateColor(TargetIterm, p, "link", "not-a-color")
	require.Error(t, err)
	assert.True(t, errors.Is(err, color.ErrInvalidColor))
	assert.False(t, changed)
	assert.Equal(t, p, updated)
}

func TestParseTargetAndNext(t *testing.T) {
	t.Parallel()

	target, err := ParseTarget(" Warp ")
	require.NoError(t, err)
	assert.Equal(t, TargetWarp, target)

	_, err = ParseTarget("alacritty")
	assert.True(t, errors.Is(err, ErrUnsupportedSchema))

	assert.Equal(t, TargetWarp, TargetIterm.Next())
	assert.Equal(t, TargetHyper, TargetWarp.Next())
	assert.Equal(t, TargetIterm, TargetHyper.Next())
	assert.Equal(t, TargetIterm, Target("other").Next())
}

func TestSchemaColors(t *testing.T) {
	t.Parallel()

	s, err := Lookup(TargetHyper)
	require.NoError(t, err)

	colors := s.Colors(samplePalette())
	assert.Equal(t, samplePalette()[3], colors[RoleSelected])

	idx, ok := s.Index(RoleForeground)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = s.Index(RoleLink)
	assert.False(t, ok)
}
