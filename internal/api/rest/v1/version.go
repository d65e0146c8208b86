package v1

// BasePath is the URL prefix shared by every route of API version 1.
const BasePath = "/api/v1"
