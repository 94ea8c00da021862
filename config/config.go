package config

import (
	"fmt"
	"os"
)

const DB_NAME string = "expo-service"

func GetSecret(key string) (string, error) {
	val, exist := os.LookupEnv(key)
	if exist {
		return val, nil
	}
	return "", fmt.Errorf("no env variable with key %v", key)
}
