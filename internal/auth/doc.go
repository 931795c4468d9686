// Package auth implements bearer-token verification for the Map Console
// Container.
//
// Tokens are HS256 JWTs carrying a subject and scopes. The console.view
// scope grants read access (session listing) and the bridge endpoint;
// console.control additionally grants map and status intents.
// When no secret is configured the middleware is not installed and the API
// runs open, for development only.
package auth
