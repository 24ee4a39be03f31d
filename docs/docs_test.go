package docs

import (
	"encoding/json"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	descRe   = regexp.MustCompile(`(?m)^// @Description\s+(.+)$`)
	routerRe = regexp.MustCompile(`(?m)^// @Router\s+(\S+)\s+\[(\w+)\]$`)
)

// annotations lee los pares @Router -> @Description de un archivo fuente.
func annotations(t *testing.T, path string) map[string]string {
	t.Helper()
	src, err := os.ReadFile(path)
	require.NoError(t, err)

	descs := descRe.FindAllStringSubmatch(string(src), -1)
	routes := routerRe.FindAllStringSubmatch(string(src), -1)
	require.Len(t, descs, len(routes), path)

	out := map[string]string{}
	for i, r := range routes {
		out[r[1]+" "+r[2]] = descs[i][1]
	}
	return out
}

func TestSwaggerDocMatchesAnnotations(t *testing.T) {
	var doc struct {
		Paths map[string]map[string]struct {
			Description string `json:"description"`
		} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	want := map[string]string{}
	for _, f := range []string{"../internal/domain/clinics/api.go", "../internal/domain/auth/handler.go"} {
		for k, v := range annotations(t, f) {
			want[k] = v
		}
	}
	require.NotEmpty(t, want)

	for key, desc := range want {
		i := strings.LastIndex(key, " ")
		path, method := key[:i], key[i+1:]
		op, ok := doc.Paths[path][method]
		require.True(t, ok, "missing %s in swagger doc", key)
		assert.Equal(t, desc, op.Description, key)
	}
}
