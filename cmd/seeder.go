package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"employee_projects", "employees", "projects", "departments"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		departments := []struct {
			Name     string
			Location string
			Code     string
		}{
			{"Engineering", "Amsterdam", "ENG1"},
			{"People Operations", "Rotterdam", "POPS"},
			{"Finance", "Amsterdam", "FIN2"},
		}

		for _, d := range departments {
			var exists int
			if err := db.Raw("SELECT 1 FROM departments WHERE dept_code = ?", d.Code).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO departments (name, location, dept_code) VALUES (?, ?, ?)", d.Name, d.Location, d.Code).Error; err != nil {
				log.Fatalf("failed to insert department %s: %v", d.Name, err)
			}
			fmt.Println("Seeded department:", d.Name)
		}

		employees := []struct {
			Name     string
			Email    string
			Salary   float64
			JoinDate string
			DeptCode string
		}{
			{"Anna de Vries", "anna@staffdesk.com", 72000, "2023-02-13", "ENG1"},
			{"Mark Jansen", "mark@staffdesk.com", 55000, "2024-06-02", "POPS"},
			{"Sofia Bakker", "sofia@staffdesk.com", 81000, "2022-11-28", "ENG1"},
		}

		for _, e := range employees {
			var exists int
			if err := db.Raw("SELECT 1 FROM employees WHERE email = ?", e.Email).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec(
				"INSERT INTO employees (name, email, salary, join_date, department_id) VALUES (?, ?, ?, ?, (SELECT id FROM departments WHERE dept_code = ?))",
				e.Name, e.Email, e.Salary, e.JoinDate, e.DeptCode,
			).Error; err != nil {
				log.Fatalf("failed to insert employee %s: %v", e.Name, err)
			}
			fmt.Println("Seeded employee:", e.Email)
		}

		projects := []struct {
			Title       string
			Description string
			StartDate   string
			Code        string
		}{
			{"Payroll Revamp", "Rebuild the payroll pipeline", "2025-01-06", "PAY01"},
			{"Onboarding Portal", "Self-service onboarding for new hires", "2025-03-17", "ONB02"},
		}

		for _, p := range projects {
			var exists int
			if err := db.Raw("SELECT 1 FROM projects WHERE project_code = ?", p.Code).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec(
				"INSERT INTO projects (title, description, start_date, project_code) VALUES (?, ?, ?, ?)",
				p.Title, p.Description, p.StartDate, p.Code,
			).Error; err != nil {
				log.Fatalf("failed to insert project %s: %v", p.Title, err)
			}
			fmt.Println("Seeded project:", p.Title)
		}

		assignments := []struct {
			Email string
			Code  string
		}{
			{"anna@staffdesk.com", "PAY01"},
			{"sofia@staffdesk.com", "PAY01"},
			{"sofia@staffdesk.com", "ONB02"},
		}

		for _, a := range assignments {
			var employeeID, projectID int64
			if err := db.Raw("SELECT id FROM employees WHERE email = ?", a.Email).Row().Scan(&employeeID); err != nil {
				log.Fatalf("failed to look up employee %s: %v", a.Email, err)
			}
			if err := db.Raw("SELECT id FROM projects WHERE project_code = ?", a.Code).Row().Scan(&projectID); err != nil {
				log.Fatalf("failed to look up project %s: %v", a.Code, err)
			}

			var exists int
			if err := db.Raw("SELECT 1 FROM employee_projects WHERE employee_id = ? AND project_id = ?", employeeID, projectID).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO employee_projects (employee_id, project_id) VALUES (?, ?)", employeeID, projectID).Error; err != nil {
				log.Fatalf("failed to assign %s to %s: %v", a.Email, a.Code, err)
			}
			fmt.Println("Seeded assignment:", a.Email, "->", a.Code)
		}

		fmt.Println("Seeding complete")
	},
}
