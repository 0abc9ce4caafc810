package docs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"
)

type swaggerDoc struct {
	Paths map[string]map[string]struct {
		Parameters []struct {
			Name     string `json:"name"`
			In       string `json:"in"`
			Required bool   `json:"required"`
		} `json:"parameters"`
		Responses map[string]json.RawMessage `json:"responses"`
	} `json:"paths"`
}

type annotatedRoute struct {
	params    []string
	responses []string
}

var (
	routerRe   = regexp.MustCompile(`@Router\s+(\S+)\s+\[(\w+)\]`)
	paramRe    = regexp.MustCompile(`@Param\s+(\w+)\s+(\w+)\s+\S+\s+(true|false)`)
	responseRe = regexp.MustCompile(`@(?:Success|Failure)\s+(\d{3})`)
)

// handlerAnnotations collects the swag comments of internal/api, keyed by
// "METHOD path". Params are rendered as "in:name:required".
func handlerAnnotations(t *testing.T) map[string]annotatedRoute {
	t.Helper()
	files, err := filepath.Glob(filepath.Join("..", "internal", "api", "*.go"))
	if err != nil || len(files) == 0 {
		t.Fatalf("glob handlers: %v (%d files)", err, len(files))
	}

	routes := make(map[string]annotatedRoute)
	for _, f := range files {
		if strings.HasSuffix(f, "_test.go") {
			continue
		}
		raw, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		var cur annotatedRoute
		for _, line := range strings.Split(string(raw), "\n") {
			if m := paramRe.FindStringSubmatch(line); m != nil {
				cur.params = append(cur.params, m[2]+":"+m[1]+":"+m[3])
			}
			if m := responseRe.FindStringSubmatch(line); m != nil {
				cur.responses = append(cur.responses, m[1])
			}
			if m := routerRe.FindStringSubmatch(line); m != nil {
				sort.Strings(cur.params)
				sort.Strings(cur.responses)
				routes[strings.ToUpper(m[2])+" "+m[1]] = cur
				cur = annotatedRoute{}
			}
		}
	}
	return routes
}

func renderedRoutes(t *testing.T) map[string]annotatedRoute {
	t.Helper()
	var doc swaggerDoc
	if err := json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc); err != nil {
		t.Fatalf("rendered document is not valid JSON: %v", err)
	}

	routes := make(map[string]annotatedRoute)
	for path, ops := range doc.Paths {
		for method, op := range ops {
			var r annotatedRoute
			for _, p := range op.Parameters {
				req := "false"
				if p.Required {
					req = "true"
				}
				r.params = append(r.params, p.In+":"+p.Name+":"+req)
			}
			for code := range op.Responses {
				r.responses = append(r.responses, code)
			}
			sort.Strings(r.params)
			sort.Strings(r.responses)
			routes[strings.ToUpper(method)+" "+path] = r
		}
	}
	return routes
}

func TestSwaggerDoc_MatchesHandlerAnnotations(t *testing.T) {
	want := handlerAnnotations(t)
	got := renderedRoutes(t)

	if len(want) == 0 {
		t.Fatalf("no @Router annotations found")
	}
	for key, w := range want {
		g, ok := got[key]
		if !ok {
			t.Errorf("%s is annotated but missing from the document", key)
			continue
		}
		if strings.Join(g.params, ",") != strings.Join(w.params, ",") {
			t.Errorf("%s params: document %v, annotations %v", key, g.params, w.params)
		}
		if strings.Join(g.responses, ",") != strings.Join(w.responses, ",") {
			t.Errorf("%s responses: document %v, annotations %v", key, g.responses, w.responses)
		}
	}
	for key := range got {
		if _, ok := want[key]; !ok {
			t.Errorf("%s is in the document but no handler declares it", key)
		}
	}
}

func TestSwaggerDoc_StatsRequiresTickerAndDate(t *testing.T) {
	stats, ok := renderedRoutes(t)["GET /api/v1/stats"]
	if !ok {
		t.Fatalf("GET /api/v1/stats missing")
	}
	want := []string{"query:date:true", "query:ticker:true"}
	if strings.Join(stats.params, ",") != strings.Join(want, ",") {
		t.Fatalf("params = %v, want %v", stats.params, want)
	}
}
