package router

import (
	"database/sql"
	"net/http"

	docHandler "notedeck/internal/document"
	docrepo "notedeck/internal/document/repository"
	docservice "notedeck/internal/document/service"
	jobHandler "notedeck/internal/job"
	jobrepo "notedeck/internal/job/repository"
	jobservice "notedeck/internal/job/service"
	summaryHandler "notedeck/internal/summary"
	summaryrepo "notedeck/internal/summary/repository"
	summaryservice "notedeck/internal/summary/service"
	"notedeck/middleware"
	"notedeck/socket"
)

func Setup(db *sql.DB, hub *socket.Hub) http.Handler {
	mux := http.NewServeMux()

	// WebSocket change feed
	wsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())
		socket.ServeWs(hub, w, r, userID)
	})
	mux.Handle("/ws", middleware.AuthMiddleware(wsHandler))

	// REST API
	documents := docrepo.NewDocumentRepository(db)
	summaries := summaryrepo.NewSummaryRepository(db)
	jobs := jobrepo.NewJobRepository(db)

	docs := docHandler.NewDocumentHandler(docservice.NewDocumentService(documents, summaries, hub))
	sums := summaryHandler.NewSummaryHandler(summaryservice.NewSummaryService(summaries, documents, hub))
	jbs := jobHandler.NewJobHandler(jobservice.NewJobService(jobs, documents, hub))
	auth := middleware.AuthMiddleware

	mux.Handle("/api/documents/create", auth(http.HandlerFunc(docs.CreateDocument)))
	mux.Handle("/api/documents/update", auth(http.HandlerFunc(docs.UpdateDocument)))
	mux.Handle("/api/documents/delete", auth(http.HandlerFunc(docs.DeleteDocument)))
	mux.Handle("/api/documents/get", auth(http.HandlerFunc(docs.GetDocument)))
	mux.Handle("/api/documents", auth(http.HandlerFunc(docs.ListDocuments)))
	mux.Handle("/api/summaries/create", auth(http.HandlerFunc(sums.CreateSummary)))
	mux.Handle("/api/summaries", auth(http.HandlerFunc(sums.ListSummaries)))
	mux.Handle("/api/jobs/create", auth(http.HandlerFunc(jbs.CreateJob)))
	mux.Handle("/api/jobs/update", auth(http.HandlerFunc(jbs.UpdateJob)))
	mux.Handle("/api/jobs", auth(http.HandlerFunc(jbs.ListJobs)))

	return middleware.CORSMiddleware(mux)
}
