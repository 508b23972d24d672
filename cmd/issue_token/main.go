// issue_token emite un Bearer Token para el operador que registra movimientos.
//
// Uso: go run ./cmd/issue_token [-operator nombre] [-minutes 720]
// Lee JWT_SECRET y JWT_ISSUER de la misma configuración que la API.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fikagroup/produccion-api/pkg/config"
	"github.com/fikagroup/produccion-api/pkg/jwt"
)

func main() {
	operator := flag.String("operator", "operador", "nombre del operador")
	minutes := flag.Int("minutes", 0, "vigencia en minutos (0 = JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	exp := cfg.JWT.Expiration
	if *minutes > 0 {
		exp = *minutes
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, *operator, cfg.JWT.Issuer, exp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
