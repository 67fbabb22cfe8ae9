package handlers

// @title Bid Payments & Chat Token API
// @version 1.0
// @description Creates payment intents for accepted bids and issues chat/video tokens

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /api

// @tag.name payments
// @tag.description Payment intent creation

// @tag.name chat
// @tag.description Chat/video token issuance
