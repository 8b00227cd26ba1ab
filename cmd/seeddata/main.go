package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// ----------------------------------------------------------------------------
// Config ---------------------------------------------------------------------
var (
	baseURL  = flag.String("url", env("API_BASE_URL", "http://localhost:8080"), "Server base URL")
	email    = flag.String("email", env("EMAIL", "admin@office.example"), "Admin e-mail")
	pass     = flag.String("pass", env("PASSWORD", "Password123"), "Admin password")
	nClients = flag.Int("n", envInt("COUNT", 40), "How many clients to create")
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		if _, err := fmt.Sscan(v, &i); err != nil {
			return def
		}
		if i > 0 {
			return i
		}
	}
	return def
}

// Price list entries mirror the office's current fee schedule.
type personalTaxService struct {
	Name  string
	Price string
}

type payrollService struct {
	Name  string
	Price float64
}

var personalTaxServices = []personalTaxService{
	{"RC151", "60"},
	{"Personal Tax Return", "65"},
	{"T1 Family Tax Return (basic)", "130"},
	{"Form T2125 (Basic)", "90"},
	{"T1 Adjustment", "60"},
	{"Form T776 (AirBnB)", "100"},
	{"Form Schedule 3-basic (sell property)", "50"},
	{"Form Schedule 6", "10"},
	{"Form T1135 (basic)", "110"},
	{"T5008 (< 5 transactions)", "30"},
	{"Form ON-BEN", "10"},
	{"NR Section 216", "150"},
	{"NR Clearance Certificate", "1680"},
	{"Personal Tax Return (complex)", "200"},
	{"T2200 FORM &T777", "50"},
	{"Day Care Expense", "20"},
	{"Form T2125 (Including HST Return)", "300"},
	{"T2091 & S3", "60"},
}

var payrollServices = []payrollService{
	{"Payroll Service", 360},
	{"Payroll A/C Registration", 50},
	{"Payroll Service Package", 720},
	{"Payroll Calculation(/Person,/Time)", 20},
	{"CRA Account Representatvie Services", 360},
	{"Pay Stub", 15},
	{"ROE", 80},
	{"Employment Letter", 80},
	{"T4/T4A/T5/NR4 Slips", 60},
	{"WSIB A/C Registration", 100},
	{"WSIB A/C Closure", 120},
	{"WSIB Auditing Support", 300},
	{"EI Application", 300},
	{"Issued Invoice", 15},
	{"GST/HST Return", 150},
	{"Corporation Income Return", 575},
	{"Annual Return-Service Fee", 0},
}

var taskStatuses = []string{"Not Started", "In Progress", "Waiting for Documents", "Review", "Completed"}
var priorities = []string{"Low", "Medium", "High"}
var provinces = []string{"ON", "BC", "AB", "QC", "MB"}

// ----------------------------------------------------------------------------
// HTTP helpers ---------------------------------------------------------------
func postJSON(path string, body any, hdr map[string]string) (*http.Response, error) {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, *baseURL+path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	return http.DefaultClient.Do(req)
}

func must(body io.ReadCloser) []byte {
	defer body.Close()
	data, _ := io.ReadAll(body)
	return data
}

// upsert posts to an /upsert route and returns the created record's id,
// found under the given JSON key in the success envelope.
func upsert(path, key string, payload any, hdr map[string]string) (string, error) {
	resp, err := postJSON(path, payload, hdr)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("%s failed (%d): %s", path, resp.StatusCode, must(resp.Body))
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(must(resp.Body), &envelope); err != nil {
		return "", err
	}
	var record struct {
		ID string `json:"id"`
	}
	if raw, ok := envelope[key]; ok {
		_ = json.Unmarshal(raw, &record)
	}
	return record.ID, nil
}

// ----------------------------------------------------------------------------
// Main -----------------------------------------------------------------------
func main() {
	flag.Parse()
	gofakeit.Seed(time.Now().UnixNano())

	fmt.Printf("Seeding %s as %s (clients=%d)\n", *baseURL, *email, *nClients)

	token, err := login()
	if err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}
	hdr := map[string]string{"Authorization": "Bearer " + token}

	if err := seedPriceLists(hdr); err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	if err := seedRecords(hdr, *nClients); err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	fmt.Println("✔ done")
}

// ----------------------------------------------------------------------------
// Step 1 – authenticate ------------------------------------------------------
func login() (string, error) {
	payload := map[string]string{"email": *email, "password": *pass}

	resp, err := postJSON("/api/v1/users/login", payload, nil)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed (%d): %s", resp.StatusCode, must(resp.Body))
	}
	var r struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(must(resp.Body), &r)
	fmt.Println("• logged in")
	return r.Token, nil
}

// ----------------------------------------------------------------------------
// Step 2 – price lists -------------------------------------------------------
func seedPriceLists(hdr map[string]string) error {
	for _, svc := range personalTaxServices {
		payload := map[string]any{"name": svc.Name, "price": svc.Price}
		if _, err := upsert("/api/v1/personal-tax-services/upsert", "service", payload, hdr); err != nil {
			return err
		}
	}
	fmt.Printf("• %d personal tax services\n", len(personalTaxServices))

	for _, svc := range payrollServices {
		payload := map[string]any{"name": svc.Name, "price": svc.Price}
		if _, err := upsert("/api/v1/payroll-services/upsert", "service", payload, hdr); err != nil {
			return err
		}
	}
	fmt.Printf("• %d payroll services\n", len(payrollServices))
	return nil
}

// ----------------------------------------------------------------------------
// Step 3 – clients, corporations, tasks --------------------------------------
func seedRecords(hdr map[string]string, total int) error {
	year := time.Now().Year()

	for i := 1; i <= total; i++ {
		dob := gofakeit.DateRange(
			time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2002, 12, 31, 0, 0, 0, 0, time.UTC))

		clientID, err := upsert("/api/v1/clients/upsert", "client", map[string]any{
			"name":      gofakeit.Name(),
			"dob":       dob.Format(time.RFC3339),
			"telephone": gofakeit.Phone(),
			"email":     gofakeit.Email(),
			"address":   gofakeit.Street(),
			"city":      gofakeit.City(),
			"province":  pick(provinces),
		}, hdr)
		if err != nil {
			return err
		}

		due := time.Date(year, 4, 30, 0, 0, 0, 0, time.UTC)
		_, err = upsert("/api/v1/personal-tax/upsert", "personalTax", map[string]any{
			"clientId":        clientID,
			"taskDescription": fmt.Sprintf("T1 return %d", year-1),
			"taxYear":         year - 1,
			"caseWorker":      gofakeit.FirstName(),
			"targetDueDate":   due.Format(time.RFC3339),
			"status":          pick(taskStatuses),
			"priority":        pick(priorities),
			"receivable":      float64(gofakeit.Number(50, 300)),
			"paid":            gofakeit.Bool(),
			"payment":         float64(gofakeit.Number(50, 300)),
		}, hdr)
		if err != nil {
			return err
		}

		// Roughly a third of clients run an incorporated business.
		if i%3 == 0 {
			corpID, err := upsert("/api/v1/corporations/upsert", "corporation", map[string]any{
				"name":           gofakeit.Company() + " Inc.",
				"clientId":       clientID,
				"businessNumber": fmt.Sprintf("%09d RC0001", gofakeit.Number(100000000, 999999999)),
				"yearEnd":        fmt.Sprintf("%d-12", year-1),
				"telephone":      gofakeit.Phone(),
				"email":          gofakeit.Email(),
			}, hdr)
			if err != nil {
				return err
			}

			corpDue := time.Date(year, 6, 30, 0, 0, 0, 0, time.UTC)
			_, err = upsert("/api/v1/corporation-tax/upsert", "corporationTax", map[string]any{
				"corpId":           corpID,
				"taskType":         "T2",
				"yearEnding":       fmt.Sprintf("%d-12", year-1),
				"taskDescription":  fmt.Sprintf("T2 return FY%d", year-1),
				"caseWorker":       gofakeit.FirstName(),
				"dueDate":          corpDue.Format(time.RFC3339),
				"status":           pick(taskStatuses),
				"priority":         pick(priorities),
				"receivableAmount": float64(gofakeit.Number(300, 1500)),
				"paid":             gofakeit.Bool(),
				"payment":          float64(gofakeit.Number(300, 1500)),
			}, hdr)
			if err != nil {
				return err
			}

			_, err = upsert("/api/v1/corporation-payroll/upsert", "corporationPayroll", map[string]any{
				"corpId":     corpID,
				"year":       year,
				"period":     fmt.Sprintf("Q%d", gofakeit.Number(1, 4)),
				"caseWorker": gofakeit.FirstName(),
				"status":     pick(taskStatuses),
				"priority":   pick(priorities),
			}, hdr)
			if err != nil {
				return err
			}
		}

		if i%10 == 0 || i == total {
			fmt.Printf("  … %d/%d clients\n", i, total)
		}
	}
	return nil
}

func pick(options []string) string {
	return options[gofakeit.Number(0, len(options)-1)]
}
