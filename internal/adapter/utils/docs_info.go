// @title           Financial Document QA API
// @version         1.0
// @description     Answers questions about uploaded financial documents via lexical retrieval and a locally hosted model.

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http
package utils

//run redis
//docker run -p 6379:6379 -d redis

//run the model server (httpapi/openai backends)
//ollama serve && ollama pull llama2

//swagger init
//swag init -g cmd/api/main.go --parseDependency --parseInternal --dir ./ --output ./cmd/api/docs
