package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000"

// The storefront keeps everything (cart, chat, login) in a cookie-backed
// session, so the whole sequence must run through one cookie jar.
var client *http.Client

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, path string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	contentType := "application/json"
	switch b := body.(type) {
	case nil:
	case url.Values:
		bodyReader = strings.NewReader(b.Encode())
		contentType = "application/x-www-form-urlencoded"
	default:
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+path, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	if bodyReader != nil {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	color.Cyan("🚀 Starting Storefront Smoke Test\n")

	jar, err := cookiejar.New(nil)
	if err != nil {
		color.Red("Failed to create cookie jar: %v", err)
		os.Exit(1)
	}
	client = &http.Client{Jar: jar}

	// 1. Home page (session cookie + recommendations)
	color.Yellow("\n[PAGE] 1. Home Page")
	resp, body, err := sendRequest("GET", "/", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	fmt.Printf("Body size: %d bytes\n", len(body))

	// 2. Search page with a facet filter
	color.Yellow("\n[PAGE] 2. Search: query=hoodie, price=10-25")
	resp, body, err = sendRequest("GET", "/search?query=hoodie&price=10-25", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	fmt.Printf("Body size: %d bytes\n", len(body))

	// 3. Autocomplete API
	color.Yellow("\n[API] 3. Autocomplete: query=ho")
	resp, body, err = sendRequest("GET", "/api/autocomplete?query=ho", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var acResp map[string]interface{}
	json.Unmarshal(body, &acResp)
	prettyPrint(acResp)

	// 4. Cart flow: add, view, checkout, confirmation
	color.Yellow("\n[CART] 4. Add To Cart")
	addForm := url.Values{}
	addForm.Set("product_id", "GGOEGAAX0037")
	addForm.Set("price", "21.99")
	addForm.Set("quantity", "2")
	resp, _, err = sendRequest("POST", "/cart/add", addForm)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	color.Yellow("\n[CART] 4a. View Cart")
	resp, body, err = sendRequest("GET", "/cart", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	if strings.Contains(string(body), "GGOEGAAX0037") {
		fmt.Println("Cart contains the added product ✅")
	} else {
		color.Red("Cart page does not show the added product")
	}

	color.Yellow("\n[CART] 4b. Checkout")
	resp, _, err = sendRequest("POST", "/cart/checkout", url.Values{})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	color.Yellow("\n[CART] 4c. Order Confirmation")
	resp, body, err = sendRequest("GET", "/order/confirmation", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	fmt.Printf("Body size: %d bytes\n", len(body))

	// 5. Conversational chat
	color.Yellow("\n[CHAT] 5. Send Message")
	chatReq := map[string]interface{}{
		"message": "I am looking for a warm hoodie under 30 dollars",
	}
	resp, body, err = sendRequest("POST", "/api/chat/message", chatReq)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var chatResp map[string]interface{}
		json.Unmarshal(body, &chatResp)
		// Concise printing to avoid a huge product dump
		if data, ok := chatResp["data"].(map[string]interface{}); ok {
			fmt.Printf("Reply: %s\n", data["reply"])
			fmt.Printf("Conversation ID: %s\n", data["conversation_id"])
			if products, ok := data["products"].([]interface{}); ok {
				fmt.Printf("Products: %d\n", len(products))
			}
		} else {
			prettyPrint(chatResp)
		}
	}

	color.Yellow("\n[CHAT] 5a. Clear Conversation")
	resp, body, err = sendRequest("POST", "/api/chat/clear", nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var clearResp map[string]interface{}
		json.Unmarshal(body, &clearResp)
		prettyPrint(clearResp)
	}

	// 6. Client event relay (single object, then an array)
	color.Yellow("\n[EVENTS] 6. Relay Single Event")
	singleEvent := map[string]interface{}{
		"event_type": "shopping-cart-page-view",
		"product_id": "GGOEGAAX0037",
	}
	resp, body, err = sendRequest("POST", "/api/events", singleEvent)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var evResp map[string]interface{}
		json.Unmarshal(body, &evResp)
		prettyPrint(evResp)
	}

	color.Yellow("\n[EVENTS] 6a. Relay Event Batch")
	batch := []map[string]interface{}{
		{"event_type": "home-page-view"},
		{"event_type": "detail-page-view", "product_id": "GGOEGAAX0037"},
	}
	resp, body, err = sendRequest("POST", "/api/events", batch)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var evResp map[string]interface{}
		json.Unmarshal(body, &evResp)
		prettyPrint(evResp)
	}

	color.Cyan("\n✅ Smoke Test Complete")
}
