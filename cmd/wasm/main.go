//go:build js && wasm

package main

import (
	"encoding/json"
	"fmt"
	"syscall/js"
	"time"

	"github.com/kittclouds/loretrack/internal/store"
	"github.com/kittclouds/loretrack/pkg/config"
	"github.com/kittclouds/loretrack/pkg/docstore"
	"github.com/kittclouds/loretrack/pkg/outline"
	"github.com/kittclouds/loretrack/pkg/tracker"
)

// Version info
const Version = "0.1.0"

// Global state
var cfg config.Config
var docs *docstore.Store
var index *store.Index
var sessions map[string]*tracker.Tracker
var refreshCb js.Value // optional JS callback: (docID, view) => void

func main() {
	cfg = config.Default()
	docs = docstore.New()
	sessions = make(map[string]*tracker.Tracker)

	var err error
	index, err = store.NewIndex()
	if err != nil {
		fmt.Println("[loretrack] FATAL: Failed to initialize index:", err.Error())
	}

	fmt.Println("[loretrack] WASM Ready v" + Version)

	js.Global().Set("Loretrack", js.ValueOf(map[string]interface{}{
		"version":           js.FuncOf(getVersion),
		"configure":         js.FuncOf(configure),
		"setRefreshHandler": js.FuncOf(setRefreshHandler),
		// DocStore API
		"hydrateDocuments": js.FuncOf(hydrateDocuments),
		"upsertDocument":   js.FuncOf(upsertDocument),
		"removeDocument":   js.FuncOf(removeDocument),
		"docCount":         js.FuncOf(docCount),
		// Tracker API
		"cursorMoved":  js.FuncOf(cursorMoved),
		"treeRoots":    js.FuncOf(treeRoots),
		"treeChildren": js.FuncOf(treeChildren),
		"candidates":   js.FuncOf(candidates),
		// Index API
		"indexEntities": js.FuncOf(indexEntities),
		"indexMentions": js.FuncOf(indexMentions),
	}))

	select {}
}

// getVersion returns the module version
func getVersion(this js.Value, args []js.Value) interface{} {
	return Version
}

// configure replaces the tracker configuration.
// Args: [configJSON string]. Existing sessions are dropped so the next
// cursor move rebuilds them with the new options.
func configure(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: configJSON")
	}

	next := config.Default()
	if err := json.Unmarshal([]byte(args[0].String()), &next); err != nil {
		return errorResult("config json: " + err.Error())
	}

	cfg = next
	sessions = make(map[string]*tracker.Tracker)
	return successResult("configured")
}

// setRefreshHandler registers a JS callback invoked as (docID, view)
// after each recompute pass. Fire-and-forget.
func setRefreshHandler(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: callback")
	}
	refreshCb = args[0]
	return successResult("handler set")
}

// hydrateDocuments bulk-loads documents.
// Args: [docsJSON string] where docsJSON is [{id, text, version}].
func hydrateDocuments(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: docsJSON")
	}

	var items []docstore.Document
	if err := json.Unmarshal([]byte(args[0].String()), &items); err != nil {
		return errorResult("docs json: " + err.Error())
	}

	n := docs.Hydrate(items)
	return successResult(fmt.Sprintf("hydrated %d documents", n))
}

// upsertDocument updates a single document.
// Args: [id string, text string, version int]
func upsertDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return errorResult("requires 3 args: id, text, version")
	}

	id := args[0].String()
	docs.Upsert(id, args[1].String(), int64(args[2].Int()))

	// Content changed: force the session to recompute on the next
	// cursor notification even if the line is unchanged.
	if t, ok := sessions[id]; ok {
		t.Invalidate()
	}
	return successResult("upserted " + id)
}

// removeDocument deletes a document and its session.
// Args: [id string]
func removeDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: id")
	}

	id := args[0].String()
	docs.Remove(id)
	delete(sessions, id)
	if index != nil {
		if err := index.DeleteDocument(id); err != nil {
			return errorResult("index delete: " + err.Error())
		}
	}
	return successResult("removed " + id)
}

// docCount returns the number of hydrated documents.
func docCount(this js.Value, args []js.Value) interface{} {
	return docs.Count()
}

// cursorMoved notifies the tracker session of a cursor move.
// Args: [docID string, line int]. Returns {ran, passes}.
func cursorMoved(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("requires 2 args: docID, line")
	}

	id := args[0].String()
	doc := docs.Get(id)
	if doc == nil {
		return errorResult("unknown document: " + id)
	}

	t := session(id)
	ran := t.OnCursorMoved(args[1].Int(), docs.Lines(id))
	if ran {
		record(id, doc, t)
		signalRefresh(id)
	}

	bytes, _ := json.Marshal(map[string]interface{}{
		"ran":    ran,
		"passes": t.Passes(),
	})
	return string(bytes)
}

// treeRoots enumerates the top level of a view.
// Args: [docID string, view string] where view is one of
// "attributes", "notes", "state", "mentions".
func treeRoots(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("requires 2 args: docID, view")
	}

	p, err := provider(args[0].String(), args[1].String())
	if err != nil {
		return errorResult(err.Error())
	}

	bytes, _ := json.Marshal(itemsToMaps(p.Roots()))
	return string(bytes)
}

// treeChildren enumerates one node of a view.
// Args: [docID string, view string, pathJSON string]
func treeChildren(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return errorResult("requires 3 args: docID, view, pathJSON")
	}

	p, err := provider(args[0].String(), args[1].String())
	if err != nil {
		return errorResult(err.Error())
	}

	var path []string
	if err := json.Unmarshal([]byte(args[2].String()), &path); err != nil {
		return errorResult("path json: " + err.Error())
	}

	bytes, _ := json.Marshal(itemsToMaps(p.Children(path)))
	return string(bytes)
}

// candidates returns promoted candidate entities from prose.
// Args: [docID string]
func candidates(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: docID")
	}

	t, ok := sessions[args[0].String()]
	if !ok || t.Mentions() == nil {
		return "[]"
	}

	bytes, _ := json.Marshal(t.Mentions().Candidates())
	return string(bytes)
}

// indexEntities lists the indexed entities of a document.
// Args: [docID string]
func indexEntities(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: docID")
	}
	if index == nil {
		return errorResult("index not initialized")
	}

	rows, err := index.ListEntities(args[0].String())
	if err != nil {
		return errorResult("index: " + err.Error())
	}
	bytes, _ := json.Marshal(rows)
	return string(bytes)
}

// indexMentions lists indexed mention counts, highest first.
// Args: [docID string]
func indexMentions(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: docID")
	}
	if index == nil {
		return errorResult("index not initialized")
	}

	rows, err := index.MentionCounts(args[0].String())
	if err != nil {
		return errorResult("index: " + err.Error())
	}
	bytes, _ := json.Marshal(rows)
	return string(bytes)
}

// Helpers

func session(id string) *tracker.Tracker {
	if t, ok := sessions[id]; ok {
		return t
	}
	t := tracker.New(cfg.TrackerOptions())
	sessions[id] = t
	return t
}

func provider(id, view string) (outline.Provider, error) {
	t, ok := sessions[id]
	if !ok {
		return nil, fmt.Errorf("no session for document: %s", id)
	}
	switch view {
	case "attributes":
		return t.Attributes(), nil
	case "notes":
		return t.Notes(), nil
	case "state":
		return t.State(), nil
	case "mentions":
		if t.Mentions() == nil {
			return nil, fmt.Errorf("mentions disabled")
		}
		return t.Mentions(), nil
	default:
		return nil, fmt.Errorf("unknown view: %s", view)
	}
}

// record mirrors the pass results into the SQLite index.
func record(id string, doc *docstore.Document, t *tracker.Tracker) {
	if index == nil {
		return
	}

	lines := docs.Lines(id)
	err := index.UpsertDocument(&store.DocumentRow{
		ID:        id,
		Name:      doc.ID,
		Version:   doc.Version,
		LineCount: len(lines),
		UpdatedAt: time.Now().Unix(),
	})
	if err != nil {
		fmt.Println("[loretrack] index document:", err.Error())
		return
	}

	var entities []store.EntityRow
	seen := make(map[string]bool)
	for _, name := range t.Attributes().Entities() {
		seen[name] = true
		entities = append(entities, store.EntityRow{DocumentID: id, Name: name, Source: store.SourceDirective})
	}
	for _, item := range t.Notes().Roots() {
		if item.Path != nil && !seen[item.Label] {
			seen[item.Label] = true
			entities = append(entities, store.EntityRow{DocumentID: id, Name: item.Label, Source: store.SourceDirective})
		}
	}

	var mentionRows []store.MentionRow
	if m := t.Mentions(); m != nil {
		for _, c := range m.Candidates() {
			if !seen[c.Name] {
				seen[c.Name] = true
				entities = append(entities, store.EntityRow{DocumentID: id, Name: c.Name, Source: store.SourceCandidate})
			}
		}
		for _, mention := range m.Mentions() {
			mentionRows = append(mentionRows, store.MentionRow{DocumentID: id, Entity: mention.Name, Count: mention.Count})
		}
	}

	if err := index.ReplaceDerived(id, entities, mentionRows); err != nil {
		fmt.Println("[loretrack] index derived:", err.Error())
	}
}

func signalRefresh(id string) {
	if refreshCb.IsUndefined() || refreshCb.IsNull() || refreshCb.Type() != js.TypeFunction {
		return
	}
	for _, view := range []string{"attributes", "notes", "state", "mentions"} {
		refreshCb.Invoke(id, view)
	}
}

func itemsToMaps(items []outline.Item) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(items))
	for _, it := range items {
		out = append(out, map[string]interface{}{
			"path":       it.Path,
			"label":      it.Label,
			"expandable": it.Expandable,
		})
	}
	return out
}

func errorResult(msg string) interface{} {
	bytes, _ := json.Marshal(map[string]interface{}{"error": msg})
	return string(bytes)
}

func successResult(msg string) interface{} {
	bytes, _ := json.Marshal(map[string]interface{}{"ok": msg})
	return string(bytes)
}
