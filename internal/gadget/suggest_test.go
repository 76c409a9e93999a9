package gadget

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuggest(t *testing.T) {
	candidates := []string{"deploy", "deploy-prod", "docker-ps", "grep-logs", "ping"}

	tests := []struct {
		name string
		want []string
	}{
		{name: "deplyo", want: []string{"deploy"}},
		{name: "dep", want: []string{"deploy", "deploy-prod"}},
		{name: "pign", want: []string{"ping"}},
		{name: "kubectl", want: []string{}},
		{name: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Suggest(tt.name, candidates)
			if tt.want == nil {
				require.Nil(t, got)
				return
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestValidateName(t *testing.T) {
	require.NoError(t, ValidateName("deploy_prod-2"))

	err := ValidateName("Deploy Prod!")
	require.ErrorIs(t, err, ErrInvalidGadgetName)
	require.Contains(t, err.Error(), `"deploy-prod"`)

	var invalid *InvalidNameError
	require.ErrorAs(t, ValidateName("!!!"), &invalid)
	require.Empty(t, invalid.Suggestion)
}
