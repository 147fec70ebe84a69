package notifier_test

import (
	"net/http"
	"testing"

	"github.com/andyle182810/buildnotify/notifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTable = notifier.NewResponseTable(map[int]string{
	http.StatusUnauthorized:       "Your credentials did not authenticate",
	http.StatusServiceUnavailable: "Servers are overloaded and refusing request",
})

func TestClassify_SuccessCode(t *testing.T) {
	t.Parallel()

	outcome := notifier.Classify(http.StatusCreated, http.StatusCreated, testTable, "Example")

	require.True(t, outcome.Success)
	require.True(t, outcome.Known)
	require.Empty(t, outcome.Description)
	require.False(t, outcome.Fatal)
}

func TestClassify_KnownCodesUseTableDescription(t *testing.T) {
	t.Parallel()

	for code, description := range testTable.Codes() {
		outcome := notifier.Classify(code, http.StatusOK, testTable, "Example")

		assert.False(t, outcome.Success)
		assert.True(t, outcome.Known)
		assert.Equal(t, code, outcome.StatusCode)
		assert.Equal(t, description, outcome.Description)
	}
}

func TestClassify_UnknownCode(t *testing.T) {
	t.Parallel()

	outcome := notifier.Classify(http.StatusTeapot, http.StatusOK, testTable, "Example")

	require.False(t, outcome.Success)
	require.False(t, outcome.Known)
	require.Equal(t, "Unrecognised HTTP response code '418' from Example", outcome.Description)
}

func TestClassify_OtherSuccessCodeIsNotSuccess(t *testing.T) {
	t.Parallel()

	outcome := notifier.Classify(http.StatusOK, http.StatusCreated, testTable, "Example")

	require.False(t, outcome.Success)
	require.Equal(t, "Unrecognised HTTP response code '200' from Example", outcome.Description)
}

func TestResponseTable_IsImmutable(t *testing.T) {
	t.Parallel()

	source := map[int]string{http.StatusBadGateway: "down"}
	table := notifier.NewResponseTable(source)

	source[http.StatusBadGateway] = "changed"
	codes := table.Codes()
	codes[http.StatusBadGateway] = "changed again"

	description, ok := table.Describe(http.StatusBadGateway)
	require.True(t, ok)
	require.Equal(t, "down", description)
	require.Equal(t, 1, table.Len())
}

func TestResponseTable_ZeroValue(t *testing.T) {
	t.Parallel()

	var table notifier.ResponseTable

	_, ok := table.Describe(http.StatusBadGateway)
	require.False(t, ok)
	require.Equal(t, 0, table.Len())
}

func TestPolicy(t *testing.T) {
	t.Parallel()

	assert.Equal(t, notifier.PolicyStrict, notifier.PolicyFor(true))
	assert.Equal(t, notifier.PolicyLenient, notifier.PolicyFor(false))
	assert.Equal(t, "strict", notifier.PolicyStrict.String())
	assert.Equal(t, "lenient", notifier.PolicyLenient.String())
	assert.Equal(t, "policy(7)", notifier.Policy(7).String())
}
