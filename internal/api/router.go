// Package api serves a published timetable over HTTP. The snapshot is never
// modified after publication, so handlers read it without locking.
package api

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/catalog"
	"github.com/rhyrak/go-timetable/internal/csvio"
	"github.com/rhyrak/go-timetable/internal/scheduler"
)

const workbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type handler struct {
	snap   *catalog.Snapshot
	report scheduler.Report
	delim  rune
	logger *zap.Logger
}

// NewRouter builds the gin engine serving snap. delim is used for CSV
// downloads; allowOrigins lists the browser origins granted CORS access.
func NewRouter(snap *catalog.Snapshot, delim rune, allowOrigins []string, logger *zap.Logger) *gin.Engine {
	h := &handler{
		snap:   snap,
		report: scheduler.Validate(snap, logger),
		delim:  delim,
		logger: logger,
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(logger), cors(allowOrigins))

	r.GET("/healthz", h.health)
	r.GET("/courses", h.listCourses)
	r.GET("/courses/:id", h.getCourse)
	r.GET("/courses/:id/shifts", h.getCourseShifts)
	r.GET("/shifts", h.listShifts)
	r.GET("/students/:number", h.getStudent)
	r.GET("/rooms", h.listRooms)
	r.GET("/validation", h.validation)
	r.GET("/timetable.csv", h.timetableCSV)
	r.GET("/timetable.xlsx", h.timetableWorkbook)
	return r
}

func (h *handler) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "session": h.snap.ID()})
}

func (h *handler) listCourses(ctx *gin.Context) {
	courses := h.snap.Courses()
	out := make([]courseSummary, 0, len(courses))
	for _, c := range courses {
		out = append(out, courseSummary{ID: c.ID(), Name: c.Name(), Shifts: len(c.Shifts()), Students: len(c.Students())})
	}
	ctx.JSON(http.StatusOK, gin.H{"courses": out})
}

func (h *handler) getCourse(ctx *gin.Context) {
	course, ok := h.snap.Course(ctx.Param("id"))
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		return
	}
	ctx.JSON(http.StatusOK, newCourseView(course))
}

func (h *handler) getCourseShifts(ctx *gin.Context) {
	course, ok := h.snap.Course(ctx.Param("id"))
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		return
	}
	shifts := course.ShiftList()
	out := make([]shiftView, 0, len(shifts))
	for _, s := range shifts {
		out = append(out, newShiftView(s))
	}
	ctx.JSON(http.StatusOK, gin.H{"shifts": out})
}

func (h *handler) listShifts(ctx *gin.Context) {
	shifts := h.snap.Shifts()
	out := make([]shiftView, 0, len(shifts))
	for _, s := range shifts {
		out = append(out, newShiftView(s))
	}
	ctx.JSON(http.StatusOK, gin.H{"shifts": out})
}

func (h *handler) getStudent(ctx *gin.Context) {
	student, ok := h.snap.Student(ctx.Param("number"))
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}
	ctx.JSON(http.StatusOK, newStudentView(student))
}

func (h *handler) listRooms(ctx *gin.Context) {
	rooms := h.snap.Rooms()
	out := make([]roomView, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, newRoomView(r))
	}
	ctx.JSON(http.StatusOK, gin.H{"rooms": out})
}

func (h *handler) validation(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.report)
}

func (h *handler) timetableCSV(ctx *gin.Context) {
	out, err := csvio.TimetableString(h.snap, h.delim)
	if err != nil {
		h.logger.Error("render timetable csv", zap.Error(err))
		ctx.Status(http.StatusInternalServerError)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="timetable.csv"`)
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(out))
}

func (h *handler) timetableWorkbook(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := csvio.WriteWorkbook(h.snap, &buf); err != nil {
		h.logger.Error("render timetable workbook", zap.Error(err))
		ctx.Status(http.StatusInternalServerError)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="timetable.xlsx"`)
	ctx.Data(http.StatusOK, workbookContentType, buf.Bytes())
}
