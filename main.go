// @title           SistemaH2 API
// @version         1.0
// @description     Work-order service API for medical equipment maintenance
// @BasePath        /api/v1
package main

import "github.com/Alkhemd/SistemaH2-sub000/cmd"

func main() {
	cmd.Execute()
}
