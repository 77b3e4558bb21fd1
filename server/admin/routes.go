package serveradmin

import (
	"log/slog"

	"github.com/edusuite/edusuite/data/docstore"
	"github.com/edusuite/edusuite/school/classes"
	"github.com/edusuite/edusuite/school/exams"
	"github.com/edusuite/edusuite/school/finance"
	"github.com/edusuite/edusuite/school/notices"
	"github.com/edusuite/edusuite/school/people"
	"github.com/edusuite/edusuite/school/slots"
	"github.com/edusuite/edusuite/school/subjects"
	"github.com/edusuite/edusuite/school/timetable"
	"github.com/edusuite/edusuite/server/feed"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type adminHandler struct {
	store      docstore.Store
	slots      *slots.Registry
	subjects   *subjects.Catalog
	classes    *classes.Service
	timetables *timetable.Service
	students   *people.Students
	staff      *people.Staff
	notices    *notices.Board
	payrolls   *finance.Payrolls
	fees       *finance.Fees
	expenses   *finance.Expenses
	exams      *exams.Service
	hub        *feed.Hub
	logger     *slog.Logger
	validate   *validator.Validate
}

func PopulateAdminRoutes(r *chi.Router, store docstore.Store, hub *feed.Hub, logger slog.Logger) {
	registry := slots.NewRegistry(store)
	catalog := subjects.NewCatalog(store)

	h := adminHandler{
		store:      store,
		slots:      registry,
		subjects:   catalog,
		classes:    classes.NewService(store),
		timetables: timetable.NewService(store, registry, catalog),
		students:   people.NewStudents(store),
		staff:      people.NewStaff(store),
		notices:    notices.NewBoard(store),
		payrolls:   finance.NewPayrolls(store),
		fees:       finance.NewFees(store),
		expenses:   finance.NewExpenses(store),
		exams:      exams.NewService(store),
		hub:        hub,
		logger:     &logger,
		validate:   validator.New(),
	}

	(*r).Get("/dashboard", h.getDashboard)

	(*r).Route("/slots", func(r chi.Router) {
		r.Get("/", h.listSlots)
		r.Post("/", h.createSlot)
		r.Delete("/{slotID}", h.deleteSlot)
	})

	(*r).Route("/classes", func(r chi.Router) {
		r.Get("/", h.listClasses)
		r.Post("/", h.createClass)
		r.Route("/{classID}", func(r chi.Router) {
			r.Use(h.verifyClass)
			r.Delete("/", h.deleteClass)
			r.Get("/sections", h.listSectionsForClass)
			r.Get("/subjects", h.listSubjectsForClass)
		})
	})

	(*r).Route("/sections", func(r chi.Router) {
		r.Get("/", h.listSections)
		r.Post("/", h.createSection)
		r.Delete("/{sectionID}", h.deleteSection)
	})

	(*r).Route("/subjects", func(r chi.Router) {
		r.Get("/", h.listSubjects)
		r.Post("/", h.createSubject)
		r.Delete("/{subjectCode}", h.deleteSubject)
	})

	(*r).Route("/timetables", func(r chi.Router) {
		r.Get("/", h.listTimetables)
		r.Post("/", h.createTimetable)
		r.Route("/{classID}/{sectionID}", func(r chi.Router) {
			r.Get("/", h.openTimetable)
			r.Get("/grid", h.renderTimetable)
			r.Patch("/", h.saveTimetable)
			r.Delete("/", h.deleteTimetable)
		})
	})

	(*r).Route("/students", func(r chi.Router) {
		r.Get("/", h.listStudents)
		r.Post("/", h.admitStudent)
		r.Route("/{admissionNumber}", func(r chi.Router) {
			r.Get("/", h.getStudent)
			r.Patch("/", h.updateStudent)
			r.Delete("/", h.deleteStudent)
		})
	})

	(*r).Route("/staff", func(r chi.Router) {
		r.Get("/", h.listStaff)
		r.Post("/", h.addStaff)
		r.Route("/{staffID}", func(r chi.Router) {
			r.Get("/", h.getStaff)
			r.Patch("/", h.updateStaff)
			r.Delete("/", h.deleteStaff)
		})
	})
	(*r).Get("/teachers", h.listTeachers)

	(*r).Route("/notices", func(r chi.Router) {
		r.Get("/", h.listNotices)
		r.Post("/", h.postNotice)
		r.Delete("/{noticeID}", h.deleteNotice)
	})

	(*r).Route("/finance", func(r chi.Router) {
		r.Route("/payroll", func(r chi.Router) {
			r.Get("/", h.listPayrolls)
			r.Post("/", h.savePayroll)
		})
		r.Route("/fees", func(r chi.Router) {
			r.Get("/", h.listFees)
			r.Post("/", h.upsertFee)
			r.Delete("/{admissionNumber}", h.deleteFee)
		})
		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", h.listExpenses)
			r.Post("/", h.addExpense)
			r.Delete("/{expenseID}", h.deleteExpense)
		})
	})

	(*r).Route("/exams", func(r chi.Router) {
		r.Get("/", h.listExams)
		r.Post("/", h.createExam)
		r.Delete("/{examID}", h.deleteExam)
	})
	(*r).Route("/results", func(r chi.Router) {
		r.Get("/", h.listResults)
		r.Post("/", h.addResult)
		r.Delete("/{resultID}", h.deleteResult)
	})
}
