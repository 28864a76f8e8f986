package database

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	ID, Name, Email, Password string
}

type seedCustomer struct {
	ID, Name, Email, ImageURL string
}

type seedInvoice struct {
	CustomerID string
	Amount     int64
	Status     string
	Date       string
}

type seedRevenue struct {
	Month   string
	Revenue int64
}

var (
	seedUsers = []seedUser{
		{ID: "410544b2-4001-4271-9855-fec4b6a6442a", Name: "User", Email: "user@nextmail.com", Password: "123456"},
	}

	seedCustomers = []seedCustomer{
		{ID: "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/static/customers/evil-rabbit.png"},
		{ID: "3958dc9e-712f-4377-85e9-fec4b6a6442a", Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: "/static/customers/delba-de-oliveira.png"},
		{ID: "3958dc9e-742f-4377-85e9-fec4b6a6442a", Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/static/customers/lee-robinson.png"},
		{ID: "76d65c26-f784-44a2-ac19-586678f7c2f2", Name: "Michael Novotny", Email: "michael@novotny.com", ImageURL: "/static/customers/michael-novotny.png"},
		{ID: "cc27c14a-0acf-4f4a-a6c9-d45682c144b9", Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/static/customers/amy-burns.png"},
		{ID: "13d07535-c59e-4157-a011-f8d2ef4e0cbb", Name: "Balazs Orban", Email: "balazs@orban.com", ImageURL: "/static/customers/balazs-orban.png"},
	}

	seedInvoices = []seedInvoice{
		{CustomerID: seedCustomers[0].ID, Amount: 15795, Status: "pending", Date: "2022-12-06"},
		{CustomerID: seedCustomers[1].ID, Amount: 20348, Status: "pending", Date: "2022-11-14"},
		{CustomerID: seedCustomers[4].ID, Amount: 3040, Status: "paid", Date: "2022-10-29"},
		{CustomerID: seedCustomers[3].ID, Amount: 44800, Status: "paid", Date: "2023-09-10"},
		{CustomerID: seedCustomers[5].ID, Amount: 34577, Status: "pending", Date: "2023-08-05"},
		{CustomerID: seedCustomers[2].ID, Amount: 54246, Status: "pending", Date: "2023-07-16"},
		{CustomerID: seedCustomers[0].ID, Amount: 666, Status: "pending", Date: "2023-06-27"},
		{CustomerID: seedCustomers[3].ID, Amount: 32545, Status: "paid", Date: "2023-06-09"},
		{CustomerID: seedCustomers[4].ID, Amount: 1250, Status: "paid", Date: "2023-06-17"},
		{CustomerID: seedCustomers[5].ID, Amount: 8546, Status: "paid", Date: "2023-06-07"},
		{CustomerID: seedCustomers[1].ID, Amount: 500, Status: "paid", Date: "2023-08-19"},
		{CustomerID: seedCustomers[5].ID, Amount: 8945, Status: "paid", Date: "2023-06-03"},
		{CustomerID: seedCustomers[2].ID, Amount: 1000, Status: "paid", Date: "2022-06-05"},
	}

	seedRevenues = []seedRevenue{
		{"Jan", 2000}, {"Feb", 1800}, {"Mar", 2200}, {"Apr", 2500},
		{"May", 2300}, {"Jun", 3200}, {"Jul", 3500}, {"Aug", 3700},
		{"Sep", 2500}, {"Oct", 2800}, {"Nov", 3000}, {"Dec", 4800},
	}
)

// Seed loads the placeholder dataset in a single transaction. Rows that already exist are left untouched.
func Seed(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed: %w", err)
	}
	defer tx.Rollback()

	for _, u := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password for %s: %w", u.Email, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO users (id, name, email, password)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING
		`, u.ID, u.Name, u.Email, string(hash))
		if err != nil {
			return fmt.Errorf("seeding user %s: %w", u.Email, err)
		}
	}

	for _, c := range seedCustomers {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO customers (id, name, email, image_url)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING
		`, c.ID, c.Name, c.Email, c.ImageURL)
		if err != nil {
			return fmt.Errorf("seeding customer %s: %w", c.Name, err)
		}
	}

	for _, inv := range seedInvoices {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO invoices (customer_id, amount, status, date)
			SELECT $1::uuid, $2::int, $3::varchar, $4::date
			WHERE NOT EXISTS (
				SELECT 1 FROM invoices WHERE customer_id = $1::uuid AND amount = $2::int AND date = $4::date
			)
		`, inv.CustomerID, inv.Amount, inv.Status, inv.Date)
		if err != nil {
			return fmt.Errorf("seeding invoice: %w", err)
		}
	}

	for _, r := range seedRevenues {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO revenue (month, revenue)
			VALUES ($1, $2)
			ON CONFLICT (month) DO NOTHING
		`, r.Month, r.Revenue)
		if err != nil {
			return fmt.Errorf("seeding revenue for %s: %w", r.Month, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	return nil
}
