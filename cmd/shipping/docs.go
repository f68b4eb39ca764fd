package main

// @title Shipping Service API
// @version 1.0
// @description Shipping microservice of the e-commerce backend. Routes live under /shipping-service/api.

// @license.name MIT

// @host localhost:8600
// @BasePath /shipping-service

// @tag.name Health
// @tag.description Health check endpoints
