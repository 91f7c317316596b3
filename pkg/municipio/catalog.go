package municipio

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Hidalgo is the canonical list of the 84 municipios of the state of
// Hidalgo, in INEGI order. The list is a deployment-time constant and
// is never mutated at runtime; by construction no two entries share a
// normalized form.
var Hidalgo = []string{
	"Acatlán",
	"Acaxochitlán",
	"Actopan",
	"Agua Blanca de Iturbide",
	"Ajacuba",
	"Alfajayucan",
	"Almoloya",
	"Apan",
	"El Arenal",
	"Atitalaquia",
	"Atlapexco",
	"Atotonilco de Tula",
	"Atotonilco el Grande",
	"Calnali",
	"Cardonal",
	"Cuautepec de Hinojosa",
	"Chapantongo",
	"Chapulhuacán",
	"Chilcuautla",
	"Eloxochitlán",
	"Emiliano Zapata",
	"Epazoyucan",
	"Francisco I. Madero",
	"Huasca de Ocampo",
	"Huautla",
	"Huazalingo",
	"Huehuetla",
	"Huejutla de Reyes",
	"Huichapan",
	"Ixmiquilpan",
	"Jacala de Ledezma",
	"Jaltocán",
	"Juárez Hidalgo",
	"Lolotla",
	"Metepec",
	"San Agustín Metzquititlán",
	"Metztitlán",
	"Mineral del Chico",
	"Mineral del Monte",
	"La Misión",
	"Mixquiahuala de Juárez",
	"Molango de Escamilla",
	"Nicolás Flores",
	"Nopala de Villagrán",
	"Omitlán de Juárez",
	"San Felipe Orizatlán",
	"Pacula",
	"Pachuca de Soto",
	"Pisaflores",
	"Progreso de Obregón",
	"Mineral de la Reforma",
	"San Agustín Tlaxiaca",
	"San Bartolo Tutotepec",
	"San Salvador",
	"Santiago de Anaya",
	"Santiago Tulantepec de Lugo Guerrero",
	"Singuilucan",
	"Tasquillo",
	"Tecozautla",
	"Tenango de Doria",
	"Tepeapulco",
	"Tepehuacán de Guerrero",
	"Tepeji del Río de Ocampo",
	"Tepetitlán",
	"Tetepango",
	"Villa de Tezontepec",
	"Tezontepec de Aldama",
	"Tianguistengo",
	"Tizayuca",
	"Tlahuelilpan",
	"Tlahuiltepa",
	"Tlanalapa",
	"Tlanchinol",
	"Tlaxcoapan",
	"Tolcayuca",
	"Tula de Allende",
	"Tulancingo de Bravo",
	"Xochiatipan",
	"Xochicoatlán",
	"Yahualica",
	"Zacualtipán de Ángeles",
	"Zapotlán de Juárez",
	"Zempoala",
	"Zimapán",
}

type catalogFile struct {
	Municipios []string `yaml:"municipios"`
}

// LoadCatalog reads an ordered catalog override from a YAML file
// (a top-level `municipios` list). It rejects empty lists and entries
// whose normalized forms collide, since the matcher relies on
// normalized keys being unique.
func LoadCatalog(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(cf.Municipios) == 0 {
		return nil, fmt.Errorf("catalog %s: no municipios listed", path)
	}

	seen := make(map[string]string, len(cf.Municipios))
	for _, name := range cf.Municipios {
		key := Normalize(name)
		if key == "" {
			return nil, fmt.Errorf("catalog %s: blank entry", path)
		}
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("catalog %s: %q and %q normalize to the same key", path, prev, name)
		}
		seen[key] = name
	}
	return cf.Municipios, nil
}
