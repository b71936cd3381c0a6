package cli

import (
	"fmt"

	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
         /$$$$$$$  /$$ /$$                       /$$                                  
        | $$__  $$|__/| $$                      | $$                                  
        | $$  \ $$ /$$| $$   /$$  /$$$$$$   /$$$$$$$| $$$$$$$   /$$$$$$   /$$$$$$   /$$$$$$ 
        | $$$$$$$ | $$| $$  /$$/ /$$__  $$ /$$_____/| $$__  $$ |____  $$ /$$__  $$ /$$__  $$
        | $$__  $$| $$| $$$$$$/ | $$$$$$$$|  $$$$$$ | $$  \ $$  /$$$$$$$| $$  \__/| $$$$$$$$
        | $$  \ $$| $$| $$_  $$ | $$_____/ \____  $$| $$  | $$ /$$__  $$| $$      | $$_____/
        | $$$$$$$/| $$| $$ \  $$|  $$$$$$$ /$$$$$$$/| $$  | $$|  $$$$$$$| $$      |  $$$$$$$
        |_______/ |__/|__/  \__/ \_______/|_______/ |__/  |__/ \_______/|__/       \_______/
        `
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(green(banner))

	fmt.Println(blue(fmt.Sprintf("Bikeshare Dashboard CLI (v%s)", versionStr)))
	fmt.Println("Hello! Let's explore some US bikeshare data!")
}
