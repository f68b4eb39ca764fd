package main

// @title User Service API
// @version 1.0
// @description User microservice of the e-commerce backend. Routes live under /user-service/api.

// @license.name MIT

// @host localhost:8700
// @BasePath /user-service

// @tag.name Health
// @tag.description Health check endpoints
