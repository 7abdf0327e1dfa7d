package comprovante

import (
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BoltDB", func() {
	var (
		tmpDir string
		dbPath string
		db     *BoltDB
	)

	newRun := func(id string, createdAt time.Time) *Run {
		return &Run{
			ID:          id,
			ArchiveName: "comprovantes.zip",
			OutputName:  "comprovantes_renomeados_20251222_103000.zip",
			Filename:    id + "_comprovantes_renomeados_20251222_103000.zip",
			Records: []Record{
				{
					OriginalName: "boleto_123.pdf",
					NewName:      "22-12-2025 - EMPRESA LTDA.pdf",
					Status:       StatusRenamed,
					Type:         TypeBoleto,
					Date:         "22-12-2025",
					Payee:        "EMPRESA LTDA",
				},
			},
			CreatedAt: createdAt,
		}
	}

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		dbPath = filepath.Join(tmpDir, "test.db")
		var err error
		db, err = NewBoltDB(dbPath)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Describe("SaveRun", func() {
		It("persists the run with its records", func() {
			run := newRun("run-1", time.Date(2025, 12, 22, 10, 30, 0, 0, time.UTC))
			Expect(db.SaveRun(run)).To(Succeed())

			saved, err := db.GetRun("run-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(saved.ArchiveName).To(Equal("comprovantes.zip"))
			Expect(saved.Records).To(HaveLen(1))
			Expect(saved.Records[0].Status).To(Equal(StatusRenamed))
			Expect(saved.Records[0].Type).To(Equal(TypeBoleto))
		})

		It("overwrites a run saved under the same ID", func() {
			run := newRun("run-1", time.Now().UTC())
			Expect(db.SaveRun(run)).To(Succeed())

			run.ArchiveName = "outro.zip"
			Expect(db.SaveRun(run)).To(Succeed())

			saved, err := db.GetRun("run-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(saved.ArchiveName).To(Equal("outro.zip"))
		})
	})

	Describe("GetRun", func() {
		When("the run does not exist", func() {
			It("returns an error", func() {
				_, err := db.GetRun("missing")
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("run not found"))
			})
		})
	})

	Describe("ListRuns", func() {
		When("the database is empty", func() {
			It("returns an empty slice", func() {
				runs, err := db.ListRuns()
				Expect(err).NotTo(HaveOccurred())
				Expect(runs).To(BeEmpty())
			})
		})

		When("several runs are saved", func() {
			BeforeEach(func() {
				base := time.Date(2025, 12, 20, 9, 0, 0, 0, time.UTC)
				Expect(db.SaveRun(newRun("run-old", base))).To(Succeed())
				Expect(db.SaveRun(newRun("run-mid", base.Add(time.Hour)))).To(Succeed())
				Expect(db.SaveRun(newRun("run-new", base.Add(2*time.Hour)))).To(Succeed())
			})

			It("returns them most recent first", func() {
				runs, err := db.ListRuns()
				Expect(err).NotTo(HaveOccurred())

				ids := []string{runs[0].ID, runs[1].ID, runs[2].ID}
				Expect(ids).To(Equal([]string{"run-new", "run-mid", "run-old"}))
			})
		})
	})

	Describe("DeleteRun", func() {
		BeforeEach(func() {
			Expect(db.SaveRun(newRun("run-1", time.Now().UTC()))).To(Succeed())
		})

		It("removes the run", func() {
			Expect(db.DeleteRun("run-1")).To(Succeed())
			_, err := db.GetRun("run-1")
			Expect(err).To(HaveOccurred())
		})
	})
})
