package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Result records one HTTP outcome for aggregation.
type Result struct {
	Status int
	Body   string
	Err    error
}

func main() {
	baseURL := flag.String("base", "http://localhost:3000", "server base url")
	amount := flag.Float64("amount", 2499, "order amount in rupees")

	// Duplicate-write probe: N concurrent verify calls sharing one payment
	// id. The server keeps no uniqueness constraint on payment ids, so all
	// of them should succeed and each should land its own order row.
	nVerifies := flag.Int("verifies", 20, "concurrent verify-payment calls")
	concurrency := flag.Int("c", 10, "max concurrency")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}

	products, err := getProducts(client, *baseURL)
	if err != nil {
		panic(fmt.Sprintf("list products failed: %v", err))
	}
	fmt.Printf("catalog has %d listings\n", len(products))

	handle, err := createOrder(client, *baseURL, *amount)
	if err != nil {
		panic(fmt.Sprintf("create order failed: %v", err))
	}
	fmt.Printf("order handle: id=%s mock=%v amount(minor)=%v\n", handle.ID, handle.Mock, handle.Amount)

	paymentID := fmt.Sprintf("pay_probe_%d", time.Now().UnixMilli())
	fmt.Printf("start duplicate-verify probe: payment_id=%s verifies=%d concurrency=%d\n",
		paymentID, *nVerifies, *concurrency)

	results := runVerifies(client, *baseURL, handle.ID, paymentID, *nVerifies, *concurrency, products)
	printSummary("verify_payment", results)
	fmt.Println("every 200 above is a separate order row for the same payment id")
}

type orderHandle struct {
	ID       string  `json:"id"`
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
	Mock     bool    `json:"mock"`
}

type product struct {
	ID         uint    `json:"id"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	SellerName string  `json:"seller_name"`
}

func getProducts(client *http.Client, baseURL string) ([]product, error) {
	resp, err := client.Get(baseURL + "/api/products")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status=%d body=%s", resp.StatusCode, string(b))
	}
	var out []product
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func createOrder(client *http.Client, baseURL string, amount float64) (orderHandle, error) {
	status, body, err := doPOST(client, baseURL+"/api/create-order", map[string]any{"amount": amount})
	if err != nil {
		return orderHandle{}, err
	}
	if status >= 300 {
		return orderHandle{}, fmt.Errorf("status=%d body=%s", status, string(body))
	}
	var out orderHandle
	if err := json.Unmarshal(body, &out); err != nil {
		return orderHandle{}, err
	}
	return out, nil
}

func runVerifies(client *http.Client, baseURL, orderID, paymentID string, total, concurrency int, products []product) []Result {
	items := make([]map[string]any, 0, 1)
	if len(products) > 0 {
		items = append(items, map[string]any{
			"id":          products[0].ID,
			"title":       products[0].Title,
			"price":       products[0].Price,
			"seller_name": products[0].SellerName,
		})
	}

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	results := make([]Result, total)

	for i := 0; i < total; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			payload := map[string]any{
				"razorpay_order_id":   orderID,
				"razorpay_payment_id": paymentID,
				"razorpay_signature":  "probe-signature",
				"isMock":              true,
				"orderDetails": map[string]any{
					"amount":        2499,
					"customerName":  "Probe Customer",
					"customerEmail": "probe@example.com",
					"address":       "1 Probe Street",
					"items":         items,
				},
			}
			status, body, err := doPOST(client, baseURL+"/api/verify-payment", payload)
			if err != nil {
				results[idx] = Result{Err: err}
				return
			}
			results[idx] = Result{Status: status, Body: string(body)}
		}(i)
	}

	wg.Wait()
	return results
}

// printSummary aggregates results by status code.
func printSummary(name string, results []Result) {
	count := map[int]int{}
	errCount := 0
	for _, r := range results {
		if r.Err != nil {
			errCount++
			continue
		}
		count[r.Status]++
	}
	fmt.Printf("[%s] http status summary:\n", name)
	for _, code := range []int{200, 400, 404, 429, 500} {
		if count[code] > 0 {
			fmt.Printf("  %d -> %d\n", code, count[code])
		}
	}
	if errCount > 0 {
		fmt.Printf("  errors -> %d\n", errCount)
	}
}

// doPOST sends a JSON POST and returns the response status and body. Only
// transport failures come back as errors; HTTP error statuses are the
// caller's to aggregate.
func doPOST(client *http.Client, url string, body any) (int, []byte, error) {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out, nil
}
