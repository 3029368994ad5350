package main

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/chtyim/fastcode/common"
	"github.com/chtyim/fastcode/compile"
	"github.com/chtyim/fastcode/files"
	"github.com/chtyim/fastcode/typetoken"
)

var (
	defaultManifest string
	resolverMux     sync.Mutex
)

// importDirs are the only places playground manifests may import from.
var importDirs = []string{"examples", "tests/lib"}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>fastcode</title></head>
<body>
<form method="post" action="/resolve" enctype="multipart/form-data" target="output">
  <textarea name="manifest" rows="24" cols="80">{{.DefaultManifest}}</textarea><br>
  <label>root <input name="root" value="Named[Integer]"></label>
  <label>capture <input name="capture"></label>
  <label>base <input name="base"></label><br>
  <textarea name="methods" rows="4" cols="80">Pair.getU
Pair.swap</textarea><br>
  <label><input type="checkbox" name="debug" value="1"> trace</label>
  <button type="submit">Resolve</button>
</form>
<iframe name="output" width="100%" height="400"></iframe>
</body>
</html>
`))

func init() {
	data, err := files.ReadFile("examples/pairs.yaml")
	if err != nil {
		log.Fatal(err)
	}
	defaultManifest = string(data)
}

func main() {
	log.SetFlags(0)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", indexHandler)
	mux.HandleFunc("POST /resolve", resolveHandler)

	port := getPort()
	addr := fmt.Sprintf("0.0.0.0:%s", port)

	log.Println("Listening on " + addr)
	log.Fatal(http.ListenAndServe(addr, logRequest(mux)))
}

func getPort() string {
	port, ok := os.LookupEnv("PORT")
	if !ok {
		return "8080"
	}
	return port
}

func indexHandler(w http.ResponseWriter, r *http.Request) {
	type Page struct {
		DefaultManifest string
	}

	err := indexTemplate.Execute(w, Page{DefaultManifest: defaultManifest})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func resolveHandler(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(500 * 1024)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	manifest := r.FormValue("manifest")
	root := r.FormValue("root")
	capture := r.FormValue("capture")
	base := r.FormValue("base")
	methods := strings.Fields(r.FormValue("methods"))

	switch {
	case root == "" && capture == "":
		http.Error(w, "root or capture is required", http.StatusBadRequest)
		return
	case capture != "" && base == "":
		http.Error(w, "capture needs base", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain")

	// The debug flags and writer are package globals.
	resolverMux.Lock()
	{
		*typetoken.DebugAll = r.FormValue("debug") != ""
		typetoken.DebugWriter = w

		_, err = common.Try(func() int {
			unit := compile.NewCompilationUnitWithFinder(files.NewSandboxFinder(importDirs...))
			if err := unit.AddSource("playground.yaml", []byte(manifest)); err != nil {
				panic(err)
			}
			universe, err := unit.Compile()
			if err != nil {
				panic(err)
			}

			var tok *typetoken.Token
			if capture != "" {
				tok, err = compile.CaptureToken(universe, capture, base)
			} else {
				tok, err = compile.RootToken(universe, root)
			}
			if err != nil {
				panic(err)
			}
			fmt.Fprintf(w, "token %v\n", tok)

			for _, ref := range methods {
				m, err := universe.Method(ref)
				if err != nil {
					panic(err)
				}
				sig, err := tok.ResolveSignature(m)
				if err != nil {
					panic(fmt.Errorf("%v: %w", ref, err))
				}
				fmt.Fprintf(w, "%v(%v) %v", ref, sig.Parameters, sig.Returns)
				if len(sig.Exceptions) > 0 {
					fmt.Fprintf(w, " throws %v", sig.Exceptions)
				}
				fmt.Fprintln(w)
			}
			return 0
		})

		*typetoken.DebugAll = false
		typetoken.DebugWriter = os.Stderr
	}
	resolverMux.Unlock()

	if err != nil {
		fmt.Fprintf(w, "ERROR: %v", err)
	}
}

func logRequest(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s %s\n", r.RemoteAddr, r.Method, r.URL)
		handler.ServeHTTP(w, r)
	})
}
