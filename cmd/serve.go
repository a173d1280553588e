package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/asciitab/tabulator/constants"
	"github.com/asciitab/tabulator/export"
	"github.com/asciitab/tabulator/meta"
	"github.com/asciitab/tabulator/model"
	"github.com/asciitab/tabulator/parser"
	"github.com/asciitab/tabulator/render"
	"github.com/asciitab/tabulator/util"
)

var (
	scoresMu sync.RWMutex
	scores   = make(map[string]*model.Score)
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the parse/render/export API",
	Long:  `Serves the parse/render/export API`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

func warningsJSON(score *model.Score) []model.WarningJSON {
	out := make([]model.WarningJSON, 0)
	for _, warn := range score.Diagnostics() {
		out = append(out, model.WarningJSON{Line: warn.LineNo, Message: warn.Message})
	}
	return out
}

func lookupScore(r *http.Request) (string, *model.Score) {
	id := mux.Vars(r)["id"]
	scoresMu.RLock()
	defer scoresMu.RUnlock()
	return id, scores[id]
}

func HandleCreateScore(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, 400, "Could not read request body: "+err.Error())
		return
	}

	score, err := parser.Parse(string(body))
	if err != nil {
		writeError(w, 400, err.Error())
		return
	}

	id := uuid.New().String()
	scoresMu.Lock()
	scores[id] = score
	scoresMu.Unlock()

	json.NewEncoder(w).Encode(model.ScoreCreatedResponse{
		Id:       id,
		Title:    score.Title,
		Artist:   score.Artist,
		Warnings: warningsJSON(score),
	})
}

func HandleListScores(w http.ResponseWriter, r *http.Request) {
	scoresMu.RLock()
	ids := util.GetKeys(scores)
	scoresMu.RUnlock()
	sort.Strings(ids)
	json.NewEncoder(w).Encode(ids)
}

func HandleGetScore(w http.ResponseWriter, r *http.Request) {
	id, score := lookupScore(r)
	if score == nil {
		writeError(w, 404, "No score with id: "+id)
		return
	}

	systems, measures := 0, 0
	for _, section := range score.Sections {
		systems += len(section.Systems)
		for _, system := range section.Systems {
			measures += len(system.Measures)
		}
	}

	summary := model.ScoreSummary{
		Id:       id,
		Title:    score.Title,
		Artist:   score.Artist,
		Capo:     score.Capo,
		Sections: len(score.Sections),
		Systems:  systems,
		Measures: measures,
		Warnings: warningsJSON(score),
	}

	key := score.Artist + " - " + score.Title
	if metas := meta.Lookup([]string{key}); len(metas) > 0 {
		if m, ok := metas[key]; ok {
			summary.Metadata = &m
		}
	}

	json.NewEncoder(w).Encode(summary)
}

func HandleRenderScore(w http.ResponseWriter, r *http.Request) {
	id, score := lookupScore(r)
	if score == nil {
		writeError(w, 404, "No score with id: "+id)
		return
	}

	out := render.Raw(score)
	if r.URL.Query().Get("grid") == "true" {
		out = render.FromModel(score)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, out)
}

func HandleExportMidi(w http.ResponseWriter, r *http.Request) {
	id, score := lookupScore(r)
	if score == nil {
		writeError(w, 404, "No score with id: "+id)
		return
	}

	tempo := float64(constants.DefaultTempoBPM)
	if t := r.URL.Query().Get("tempo"); t != "" {
		v, err := strconv.ParseFloat(t, 64)
		if err != nil || v <= 0 {
			writeError(w, 400, "Invalid tempo: "+t)
			return
		}
		tempo = v
	}

	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+".mid"))
	if err := export.WriteSMF(w, score, tempo); err != nil {
		fmt.Printf("Could not write midi for %v because: %v\n", id, err)
	}
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/scores", HandleCreateScore).Methods("POST")
	router.HandleFunc("/scores", HandleListScores).Methods("GET")
	router.HandleFunc("/scores/{id}", HandleGetScore).Methods("GET")
	router.HandleFunc("/scores/{id}/text", HandleRenderScore).Methods("GET")
	router.HandleFunc("/scores/{id}/midi", HandleExportMidi).Methods("GET")
	return cors.Default().Handler(router)
}

func serve() {
	addr := constants.GetServeAddr()
	fmt.Printf("Listening on %v\n", addr)
	log.Fatal(http.ListenAndServe(addr, NewRouter()))
}
